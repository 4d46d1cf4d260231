package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/internal/logger"
	"github.com/Faultbox/meshbatch/pkg/formats"
)

// ErrNotFound is returned when no asset is stored at a path.
var ErrNotFound = errors.New("asset not found")

// Asset kinds.
const (
	KindMesh   = "mesh"
	KindPrefab = "prefab"
)

// Asset is one stored asset row, keyed by its path.
type Asset struct {
	Path      string `gorm:"primaryKey"`
	Kind      string `gorm:"index"`
	Data      []byte
	UpdatedAt time.Time
}

// AssetInfo describes a stored asset without its payload.
type AssetInfo struct {
	Path      string
	Kind      string
	Size      int
	UpdatedAt time.Time
}

// Database stores mesh assets and prefabs in SQLite.
type Database struct {
	db     *gorm.DB
	folder string
	cache  *Cache
	log    *zap.Logger
}

// Open opens (or creates) the asset database at path and migrates it.
// Stored asset paths are rooted at folder.
func Open(path, folder string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	if folder == "" {
		folder = DefaultFolder
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening asset database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Asset{}); err != nil {
		return nil, fmt.Errorf("migrating asset database: %w", err)
	}

	log := logger.Named("assets")
	log.Debug("asset database opened", zap.String("path", path), zap.String("folder", folder))

	return &Database{
		db:     db,
		folder: folder,
		cache:  NewCache(),
		log:    log,
	}, nil
}

// Folder returns the root folder of stored asset paths.
func (d *Database) Folder() string {
	return d.folder
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	d.cache.Clear()
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WriteMeshAsset stores mesh under <folder>/<name>.asset and returns the path.
// An existing asset at that path is overwritten.
func (d *Database) WriteMeshAsset(mesh *model.Mesh, name string) (string, error) {
	if mesh == nil {
		return "", errors.New("no mesh to write")
	}
	path := MeshPath(d.folder, name)
	if err := d.put(path, KindMesh, MeshToAsset(mesh).Marshal()); err != nil {
		return "", err
	}
	d.log.Info("mesh asset written",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("submeshes", mesh.SubmeshCount()))
	return path, nil
}

// WritePrefabReplacing stores a prefab of root under <folder>/<name>.prefab,
// replacing any existing prefab at that path. The prefab references the
// mesh asset of the same name.
func (d *Database) WritePrefabReplacing(root *scene.Node, name string) (string, error) {
	path := PrefabPath(d.folder, name)
	data, err := nodeToPrefab(root, MeshPath(d.folder, name)).Marshal()
	if err != nil {
		return "", err
	}
	if err := d.put(path, KindPrefab, data); err != nil {
		return "", err
	}
	d.log.Info("prefab written", zap.String("path", path), zap.String("root", root.Name))
	return path, nil
}

func (d *Database) put(path, kind string, data []byte) error {
	row := Asset{Path: path, Kind: kind, Data: data}
	if err := d.db.Save(&row).Error; err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	d.cache.Set(path, data)
	return nil
}

// Load returns the raw payload stored at path.
func (d *Database) Load(path string) ([]byte, error) {
	if data, ok := d.cache.Get(path); ok {
		return data, nil
	}

	var row Asset
	err := d.db.First(&row, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	d.cache.Set(path, row.Data)
	return row.Data, nil
}

// LoadMesh decodes the mesh asset called name.
func (d *Database) LoadMesh(name string) (*model.Mesh, error) {
	path := MeshPath(d.folder, name)
	data, err := d.Load(path)
	if err != nil {
		return nil, err
	}
	a, err := formats.ParseMeshAsset(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return AssetToMesh(a), nil
}

// LoadPrefab decodes the prefab called name.
func (d *Database) LoadPrefab(name string) (*formats.Prefab, error) {
	path := PrefabPath(d.folder, name)
	data, err := d.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := formats.ParsePrefab(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return p, nil
}

// List returns every stored asset ordered by path.
func (d *Database) List() ([]AssetInfo, error) {
	var rows []Asset
	if err := d.db.Order("path").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	out := make([]AssetInfo, len(rows))
	for i, r := range rows {
		out[i] = AssetInfo{Path: r.Path, Kind: r.Kind, Size: len(r.Data), UpdatedAt: r.UpdatedAt}
	}
	return out, nil
}

// CacheStats returns read cache statistics.
func (d *Database) CacheStats() (hits, misses int) {
	return d.cache.Stats()
}
