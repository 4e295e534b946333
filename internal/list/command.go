package list

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Ran-Mewo/zip4go"
	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
)

type Command struct {
	Password string `short:"p" long:"password" description:"password for encrypted archives"`
	Long     bool   `short:"l" long:"long" description:"also show compressed size, method, and CRC-32"`
	Args     struct {
		Files []flags.Filename `positional-arg-name:"file" description:"the ZIP archives to list" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	n := len(c.Args.Files)
	for i, file := range c.Args.Files {
		if err := c.list(string(file)); err != nil {
			log.Printf(`%d/%d: list "%s" error: %v`, i+1, n, file, err)
		}
	}

	return nil
}

func (c *Command) list(name string) error {
	ar, err := open(name, c.Password)
	if err != nil {
		return err
	}
	defer ar.Close()

	count, err := ar.EntryCount()
	if err != nil {
		return err
	}

	comment, err := ar.Comment()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d entries\n", name, count)
	if comment != "" {
		fmt.Printf("comment: %s\n", comment)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	if c.Long {
		_, _ = fmt.Fprintln(w, "SIZE\tPACKED\tRATIO\tMETHOD\tCRC-32\tNAME")
	} else {
		_, _ = fmt.Fprintln(w, "SIZE\tRATIO\tNAME")
	}

	for entry, err := range ar.Entries() {
		if err != nil {
			return err
		}
		if err = c.printEntry(w, entry); err != nil {
			return err
		}
	}

	return w.Flush()
}

func (c *Command) printEntry(w *tabwriter.Writer, entry *zip4go.Entry) error {
	name, err := entry.Name()
	if err != nil {
		return err
	}

	if dir, err := entry.IsDirectory(); err != nil {
		return err
	} else if dir {
		if c.Long {
			_, _ = fmt.Fprintf(w, "-\t-\t-\t-\t-\t%s\n", name)
		} else {
			_, _ = fmt.Fprintf(w, "-\t-\t%s\n", name)
		}
		return nil
	}

	size, err := entry.Size()
	if err != nil {
		return err
	}
	ratio, err := entry.CompressionRatio()
	if err != nil {
		return err
	}

	if encrypted, err := entry.IsEncrypted(); err != nil {
		return err
	} else if encrypted {
		name += " *"
	}

	if !c.Long {
		_, _ = fmt.Fprintf(w, "%s\t%.1f%%\t%s\n", humanize.IBytes(uint64(size)), ratio, name)
		return nil
	}

	packed, err := entry.CompressedSize()
	if err != nil {
		return err
	}
	method, err := entry.CompressionMethod()
	if err != nil {
		return err
	}
	crc, err := entry.CRC32()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%s\t%08x\t%s\n",
		humanize.IBytes(uint64(size)), humanize.IBytes(uint64(packed)), ratio, method, crc, name)
	return nil
}

func open(name, password string) (*zip4go.Archive, error) {
	if password != "" {
		return zip4go.NewWithPassword(name, password)
	}
	return zip4go.New(name)
}
