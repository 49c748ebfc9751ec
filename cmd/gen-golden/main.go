package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/cat"
)

// defaultFlagSets is used for inputs without golden files yet.
var defaultFlagSets = []string{"n", "b", "s", "E", "T", "v", "sn", "bsE", "vET"}

func main() {
	root := "testdata"
	var inputs []string
	flagsByBase := map[string][]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".txt") {
			inputs = append(inputs, path)
			return nil
		}
		if base, flags, ok := parseGoldenName(path); ok {
			flagsByBase[base] = append(flagsByBase[base], flags)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(inputs) == 0 {
		fatalf("no .txt inputs found under %s", root)
	}
	for _, path := range inputs {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		base := strings.TrimSuffix(path, ".txt")
		sets := flagsByBase[base]
		if len(sets) == 0 {
			sets = defaultFlagSets
		}
		for _, flags := range sets {
			opts, err := cat.ParseShortFlags(flags)
			if err != nil {
				fatalf("%s: flags %q: %v", path, flags, err)
			}
			var out bytes.Buffer
			if err := cat.NewEngine(&out, opts, nil).Transform(src); err != nil {
				fatalf("transform %s -%s: %v", path, flags, err)
			}
			goldenPath := base + "." + flags + ".golden"
			if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// parseGoldenName splits "testdata/name.flags.golden" into its input base
// and flag letters.
func parseGoldenName(path string) (string, string, bool) {
	if !strings.HasSuffix(path, ".golden") {
		return "", "", false
	}
	name := strings.TrimSuffix(path, ".golden")
	idx := strings.LastIndex(name, ".")
	if idx == -1 || idx == len(name)-1 {
		return "", "", false
	}
	flags := name[idx+1:]
	if strings.ContainsAny(flags, `/\`) {
		return "", "", false
	}
	return name[:idx], flags, true
}
