package main

import (
	"log"

	"github.com/Ran-Mewo/zip4go"
	"github.com/Ran-Mewo/zip4go/internal/add"
	"github.com/Ran-Mewo/zip4go/internal/extract"
	"github.com/Ran-Mewo/zip4go/internal/list"
	"github.com/Ran-Mewo/zip4go/internal/remove"
	"github.com/jessevdk/go-flags"
)

var opts struct {
	List    list.Command    `command:"list" alias:"ls" description:"list the entries of ZIP archives"`
	Add     add.Command     `command:"add" description:"add files, directories, or stdin data to a ZIP archive"`
	Extract extract.Command `command:"extract" alias:"x" description:"extract ZIP archives"`
	Remove  remove.Command  `command:"remove" alias:"rm" description:"remove entries from a ZIP archive"`
}

func main() {
	p := flags.NewParser(&opts, flags.Default)
	_, err := p.Parse()

	if cErr := zip4go.Cleanup(); cErr != nil {
		log.Printf("shut down native library error: %v", cErr)
	}

	exit(err)
}
