package add

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/Ran-Mewo/zip4go"
	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

type Command struct {
	Archive    flags.Filename `short:"f" long:"file" description:"the ZIP archive to create or update" required:"yes"`
	Name       string         `long:"name" description:"entry name to use when adding data from stdin"`
	Password   string         `short:"p" long:"password" description:"password for the new entries (enables encryption)"`
	Encryption string         `short:"e" long:"encryption" choice:"standard" choice:"aes128" choice:"aes256" default:"aes256" description:"encryption method used when a password is given"`
	Level      string         `short:"l" long:"level" choice:"none" choice:"fastest" choice:"normal" choice:"maximum" default:"normal" description:"compression level"`
	Store      bool           `long:"store" description:"store entries without compression"`
	Args       struct {
		Paths []flags.Filename `positional-arg-name:"path" description:"files or directories to add; pass - to read data from stdin" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	params, err := c.params()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ar, err := zip4go.New(string(c.Archive))
	if err != nil {
		return fmt.Errorf(`open archive "%s" error: %w`, c.Archive, err)
	}
	defer ar.Close()

	sometimes := rate.Sometimes{Interval: 5 * time.Second}
	n := len(c.Args.Paths)
	for i, path := range c.Args.Paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err = c.add(ar, string(path), params); err != nil {
			return fmt.Errorf(`add "%s" error: %w`, path, err)
		}

		sometimes.Do(func() {
			log.Printf(`[%d/%d] done adding "%s"`, i+1, n, path)
		})
	}

	if fi, err := os.Stat(string(c.Archive)); err == nil {
		log.Printf(`wrote "%s" (%s)`, c.Archive, humanize.IBytes(uint64(fi.Size())))
	}

	return nil
}

func (c *Command) add(ar *zip4go.Archive, path string, params *zip4go.Parameters) error {
	if path == "-" {
		return c.addStdin(ar, params)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	if fi.IsDir() {
		return ar.AddDirectory(path, params)
	}
	return ar.AddFile(path, params)
}

// addStdin buffers stdin in memory and adds it as a single entry named by
// the --name flag.
func (c *Command) addStdin(ar *zip4go.Archive, params *zip4go.Parameters) error {
	if c.Name == "" {
		return fmt.Errorf("--name is required when adding from stdin")
	}

	bar := progressbar.DefaultBytes(-1, "reading stdin")
	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), os.Stdin); err != nil {
		return fmt.Errorf("read stdin error: %w", err)
	}
	_ = bar.Close()

	return ar.AddData(c.Name, buf.Bytes(), params)
}

func (c *Command) params() (*zip4go.Parameters, error) {
	var optFns []func(*zip4go.Parameters)

	switch c.Level {
	case "none":
		optFns = append(optFns, zip4go.WithCompressionLevel(zip4go.CompressionLevelNone))
	case "fastest":
		optFns = append(optFns, zip4go.WithCompressionLevel(zip4go.CompressionLevelFastest))
	case "maximum":
		optFns = append(optFns, zip4go.WithCompressionLevel(zip4go.CompressionLevelMaximum))
	}

	if c.Store {
		optFns = append(optFns, zip4go.WithCompressionMethod(zip4go.Store))
	}

	if c.Password != "" {
		switch c.Encryption {
		case "standard":
			optFns = append(optFns, zip4go.WithStandardEncryption(c.Password))
		case "aes128":
			optFns = append(optFns, zip4go.WithAES128Encryption(c.Password))
		case "aes256":
			optFns = append(optFns, zip4go.WithAES256Encryption(c.Password))
		}
	} else if c.Encryption != "aes256" {
		return nil, fmt.Errorf("--encryption requires --password")
	}

	return zip4go.DefaultParameters(optFns...), nil
}
