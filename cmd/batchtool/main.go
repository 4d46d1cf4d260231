// batchtool combines the meshes of a scene description into one mesh per
// root and manages the resulting asset database.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return errUsage
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "combine":
		return cmdCombine(args, out)
	case "info":
		return cmdInfo(args, out)
	case "assets", "ls":
		return cmdAssets(args, out)
	case "inspect":
		return cmdInspect(args, out)
	case "config":
		return cmdConfig(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(out)
		return errUsage
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `batchtool - mesh batching utility

Usage:
  batchtool <command> [options]

Commands:
  combine [options] <scene.yaml>   Combine the scene root's meshes and run post-processing
  info [options] <scene.yaml>      Show the meshes a combine would merge
  assets [options]                 List stored assets
  inspect [options] <name>         Summarise a stored mesh asset
  config [options]                 Print the effective config (-write, -o <file> to save it)

Options:
  -config <file>      Config file (default ./meshbatch.yaml or user config dir)
  -collider <kind>    none, mesh, sphere, box, capsule
  -rigidbody          Attach a kinematic rigid body
  -save <action>      none, mesh, prefab
  -name <name>        Asset name used when saving
  -db <file>          Asset database path
  -keep-children      Leave source nodes active
  -debug              Enable debug logging

Examples:
  batchtool combine -collider box -save prefab -name tower scenes/tower.yaml
  batchtool info scenes/tower.yaml
  batchtool inspect tower
  batchtool config -collider box -save mesh -write`)
}
