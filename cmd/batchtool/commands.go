package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbatch/internal/assets"
	"github.com/Faultbox/meshbatch/internal/attach"
	"github.com/Faultbox/meshbatch/internal/batch"
	"github.com/Faultbox/meshbatch/internal/config"
	"github.com/Faultbox/meshbatch/internal/engine/model"
	"github.com/Faultbox/meshbatch/internal/engine/scene"
	"github.com/Faultbox/meshbatch/internal/logger"
)

// setup parses the command's flags, loads config and initializes logging.
// extra, if not nil, registers command-specific flags. It returns the
// remaining positional arguments.
func setup(name string, args []string, extra func(*flag.FlagSet)) (*config.Config, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var flags config.Flags
	flags.Register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, errUsage
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("command", name),
		zap.Stringer("collider", cfg.Batch.Collider),
		zap.Stringer("save_action", cfg.Batch.SaveAction),
		zap.String("database", cfg.Assets.Database))
	return cfg, fs.Args(), nil
}

func cmdCombine(args []string, out io.Writer) error {
	cfg, args, err := setup("combine", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: batchtool combine [options] <scene.yaml>")
		return errUsage
	}

	root, err := scene.LoadFile(args[0])
	if err != nil {
		return err
	}

	graph := scene.Graph{}
	report := batch.New(graph, batch.WithLogger(logger.Named("batch"))).Combine(root)
	printReport(out, &report)
	if !report.Combined() {
		return nil
	}
	logger.Info("combine finished",
		zap.String("scene", args[0]),
		zap.Int("failures", len(report.Failures())))

	err = attach.Apply(graph, root, attach.Options{
		Collider:           cfg.Batch.Collider,
		Rigidbody:          cfg.Batch.Rigidbody,
		DeactivateChildren: cfg.Batch.DeactivateChildren,
	})
	if err != nil {
		return err
	}

	if cfg.Batch.SaveAction == assets.SaveNone {
		return nil
	}

	db, err := assets.Open(cfg.Assets.Database, cfg.Assets.Folder)
	if err != nil {
		return err
	}
	defer db.Close()

	f := assets.NewFinalizer(graph, db, logger.Named("finalize"))
	saved, err := f.Finalize(root, cfg.Batch.SaveAction, cfg.Batch.AssetName)
	if err != nil {
		logger.Error("finalize failed", zap.String("root", root.Name), zap.Error(err))
		return err
	}
	if saved {
		fmt.Fprintf(out, "Saved:      %s (%s)\n", cfg.Batch.AssetName, cfg.Batch.SaveAction)
	}
	return nil
}

func printReport(out io.Writer, r *batch.Report) {
	fmt.Fprintf(out, "Root:       %s\n", r.Root)
	fmt.Fprintf(out, "Instances:  %d\n", r.InstanceCount)
	fmt.Fprintf(out, "Vertices:   %d\n", r.VertexCount)
	if r.Abort != nil {
		fmt.Fprintf(out, "Result:     skipped (%v)\n", r.Abort)
		return
	}

	fmt.Fprintf(out, "Result:     %s, %d vertices, %d submeshes\n",
		r.Mesh.Name, r.Mesh.VertexCount(), r.Mesh.SubmeshCount())
	for i, g := range r.Groups() {
		fmt.Fprintf(out, "  [%d] %-16s %d triangles\n", i, g.Material.Name, len(g.Indices)/3)
	}
	for _, f := range r.Failures() {
		fmt.Fprintf(out, "  failed: %s at offset %d: %v\n", f.Name, f.VertexOffset, f.Err)
	}
}

func cmdInfo(args []string, out io.Writer) error {
	_, args, err := setup("info", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: batchtool info [options] <scene.yaml>")
		return errUsage
	}

	root, err := scene.LoadFile(args[0])
	if err != nil {
		return err
	}

	instances := batch.Collect(scene.Graph{}, root)
	fmt.Fprintf(out, "Root: %s\n\n", root.Name)
	for i, inst := range instances {
		names := make([]string, len(inst.Materials))
		for j, m := range inst.Materials {
			names[j] = "~"
			if m != nil {
				names[j] = m.Name
			}
		}
		fmt.Fprintf(out, "  %3d %-20s %6d vertices %2d submeshes %v\n",
			i, inst.Node.Name, inst.Mesh.VertexCount(), inst.Mesh.SubmeshCount(), names)
	}

	vertices := batch.CountVertices(instances)
	fmt.Fprintf(out, "\nVertices: %d / %d\n", vertices, model.MaxIndexedVertices)
	if err := batch.CheckLimits(root.Name, len(instances), vertices); err != nil {
		fmt.Fprintf(out, "Combine:  skipped (%v)\n", err)
	} else {
		fmt.Fprintln(out, "Combine:  ok")
	}
	return nil
}

func cmdAssets(args []string, out io.Writer) error {
	cfg, _, err := setup("assets", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := assets.Open(cfg.Assets.Database, cfg.Assets.Folder)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.List()
	if err != nil {
		return err
	}
	for _, a := range list {
		fmt.Fprintf(out, "%-40s %-7s %8d  %s\n", a.Path, a.Kind, a.Size, a.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "\nTotal: %d assets\n", len(list))
	return nil
}

func cmdInspect(args []string, out io.Writer) error {
	cfg, args, err := setup("inspect", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	name := cfg.Batch.AssetName
	if len(args) > 0 {
		name = args[0]
	}

	db, err := assets.Open(cfg.Assets.Database, cfg.Assets.Folder)
	if err != nil {
		return err
	}
	defer db.Close()

	mesh, err := db.LoadMesh(name)
	if err != nil {
		return err
	}

	b := mesh.Bounds()
	fmt.Fprintf(out, "Asset:     %s\n", assets.MeshPath(db.Folder(), name))
	fmt.Fprintf(out, "Mesh:      %s\n", mesh.Name)
	fmt.Fprintf(out, "Vertices:  %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "Normals:   %d\n", len(mesh.Normals))
	fmt.Fprintf(out, "UV:        %d\n", len(mesh.UV))
	fmt.Fprintf(out, "UV2:       %d\n", len(mesh.UV2))
	fmt.Fprintf(out, "Bounds:    %v - %v\n", b.Min.Array(), b.Max.Array())
	for i := range mesh.Submeshes {
		fmt.Fprintf(out, "  submesh %d: %d triangles\n", i, len(mesh.Triangles(i))/3)
	}
	if err := mesh.Validate(); err != nil {
		logger.Warn("stored mesh is inconsistent", zap.String("asset", name), zap.Error(err))
		fmt.Fprintf(out, "Valid:     no (%v)\n", err)
	} else {
		fmt.Fprintln(out, "Valid:     yes")
	}
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	var write bool
	var output string
	cfg, _, err := setup("config", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&write, "write", false, "Write the effective config to the user config directory")
		fs.StringVar(&output, "o", "", "Write the effective config to this file")
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	switch {
	case output != "":
		if err := cfg.SaveTo(output); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", output))
		fmt.Fprintf(out, "Wrote %s\n", output)
	case write:
		if err := cfg.Save(); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", config.UserConfigPath()))
		fmt.Fprintf(out, "Wrote %s\n", config.UserConfigPath())
	default:
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		out.Write(data)
	}
	return nil
}
