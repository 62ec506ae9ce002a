package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sealdice/wildseal/tools/convert/converter"
)

func main() {
	inputPath := flag.String("input", "", "path to the wildcard bundle (yaml or json); omit to read from stdin")
	outputDir := flag.String("output", "", "directory to write the .txt wildcard files into")
	ext := flag.String("ext", ".txt", "extension of the written files")
	force := flag.Bool("force", false, "overwrite existing files")
	dryRun := flag.Bool("dry-run", false, "only list the files that would be written")
	flag.Parse()

	if *outputDir == "" && !*dryRun {
		exitWithError(errors.New("no output directory; specify -output"))
	}

	data, err := readInput(*inputPath)
	if err != nil {
		exitWithError(err)
	}

	if len(data) == 0 {
		exitWithError(errors.New("no input provided; specify -input or pipe data"))
	}

	bundle, err := converter.ParseBundle(data, detectInputFormat(*inputPath, data))
	if err != nil {
		exitWithError(err)
	}

	if *dryRun {
		for _, key := range bundle.Keys() {
			fmt.Printf("%s%s (%d lines)\n", key, *ext, len(bundle[key]))
		}
		return
	}

	files, err := bundle.WriteTree(*outputDir, *ext, *force)
	if err != nil {
		exitWithError(err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d files to %s\n", len(files), *outputDir)
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func detectInputFormat(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}

	for _, b := range data {
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if b == '{' || b == '[' {
			return "json"
		}
		break
	}
	return "yaml"
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
