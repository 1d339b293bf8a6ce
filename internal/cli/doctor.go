package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

type DoctorCmd struct{}

// Run checks the local setup: storage reachable, preferences readable, and
// no second studyflow process sharing the store (the storage layer is
// single-process by contract).
func (c *DoctorCmd) Run(ctx *Context) error {
	problems := 0

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("FAIL storage file %s: %v\n", path, err)
		problems++
	} else {
		fmt.Printf("ok   storage file %s\n", path)
	}

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("FAIL load storage: %v\n", err)
		problems++
	} else if _, err := ctx.Store.GetPreferences(); err != nil {
		fmt.Printf("FAIL read preferences: %v\n", err)
		problems++
	} else {
		fmt.Println("ok   preferences readable")
	}

	procs, err := ps.Processes()
	if err != nil {
		fmt.Printf("warn process scan unavailable: %v\n", err)
	} else {
		self := os.Getpid()
		name := filepath.Base(os.Args[0])
		others := 0
		for _, p := range procs {
			if p.Pid() != self && strings.Contains(p.Executable(), name) {
				others++
			}
		}
		if others > 0 {
			fmt.Printf("warn %d other %s process(es) running; concurrent use of one store is not supported\n", others, name)
		} else {
			fmt.Println("ok   no concurrent processes")
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Println("All checks passed.")
	return nil
}
