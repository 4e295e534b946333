package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/Ran-Mewo/zip4go"
	"github.com/Ran-Mewo/zip4go/internal"
	"github.com/jessevdk/go-flags"
	"github.com/schollz/progressbar/v3"
)

type Command struct {
	Password string         `short:"p" long:"password" description:"password for encrypted archives"`
	Dir      flags.Filename `short:"d" long:"dir" description:"destination directory; default derives one from the archive name"`
	Entries  []string       `short:"n" long:"name" description:"extract only the named entries"`
	Args     struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the ZIP archives to extract" required:"yes"`
	} `positional-args:"yes"`
}

type result struct {
	File   string
	Output string
	Err    error
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// save the results so that at the end, we can reprint them.
	n := len(c.Args.Files)
	results := make([]result, 0, n)

	for i, file := range c.Args.Files {
		ctx := internal.WithPrefixLogger(ctx, internal.Prefix(i+1, n, file))

		output, err := c.extract(ctx, string(file))
		if err != nil {
			internal.MustLogger(ctx).Printf("extract error: %v", err)
		}
		results = append(results, result{File: string(file), Output: output, Err: err})

		if ctx.Err() != nil {
			break
		}
	}

	for _, r := range results {
		if r.Err != nil {
			log.Printf(`"%s": failed: %v`, r.File, r.Err)
		} else {
			log.Printf(`"%s": extracted to "%s"`, r.File, r.Output)
		}
	}

	return nil
}

// extract extracts the content of the named archive and returns the
// destination directory.
func (c *Command) extract(ctx context.Context, name string) (string, error) {
	ar, err := c.open(name)
	if err != nil {
		return "", err
	}
	defer ar.Close()

	output := string(c.Dir)
	if output == "" {
		output = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if err = os.MkdirAll(output, 0o755); err != nil {
		return "", err
	}

	if len(c.Entries) != 0 {
		for _, entry := range c.Entries {
			if err = ctx.Err(); err != nil {
				return "", err
			}
			if err = ar.ExtractFile(entry, output); err != nil {
				return "", fmt.Errorf(`extract entry "%s" error: %w`, entry, err)
			}
		}
		return output, nil
	}

	count, err := ar.EntryCount()
	if err != nil {
		return "", err
	}

	bar := progressbar.Default(int64(count), internal.MustPrefix(ctx))
	defer bar.Close()

	for entry, err := range ar.Entries() {
		if err != nil {
			return "", err
		}

		if err = ctx.Err(); err != nil {
			return "", err
		}

		if err = ar.ExtractEntry(entry, output); err != nil {
			entryName, _ := entry.Name()
			return "", fmt.Errorf(`extract entry "%s" error: %w`, entryName, err)
		}

		_ = bar.Add(1)
	}

	return output, nil
}

func (c *Command) open(name string) (*zip4go.Archive, error) {
	if c.Password != "" {
		return zip4go.NewWithPassword(name, c.Password)
	}
	return zip4go.New(name)
}
