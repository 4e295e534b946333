package remove

import (
	"fmt"
	"log"
	"strings"

	"github.com/Ran-Mewo/zip4go"
	"github.com/jessevdk/go-flags"
)

type Command struct {
	Archive  flags.Filename `short:"f" long:"file" description:"the ZIP archive to remove entries from" required:"yes"`
	Password string         `short:"p" long:"password" description:"password for encrypted archives"`
	Args     struct {
		Entries []string `positional-arg-name:"entry" description:"names of the entries to remove" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	var ar *zip4go.Archive
	var err error
	if c.Password != "" {
		ar, err = zip4go.NewWithPassword(string(c.Archive), c.Password)
	} else {
		ar, err = zip4go.New(string(c.Archive))
	}
	if err != nil {
		return fmt.Errorf(`open archive "%s" error: %w`, c.Archive, err)
	}
	defer ar.Close()

	n := len(c.Args.Entries)
	removed := 0
	for i, entry := range c.Args.Entries {
		if err = ar.RemoveFile(entry); err != nil {
			log.Printf(`%d/%d: remove "%s" error: %v`, i+1, n, entry, err)
			continue
		}
		removed++
	}

	log.Printf(`removed %d/%d entries from "%s"`, removed, n, c.Archive)
	return nil
}
