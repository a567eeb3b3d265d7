package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dhalloran/adorn"
)

// Run executes the outline command.
func (c *OutlineCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %q: %v\n", c.Input, err)
		return err
	}

	result, err := deps.Extractor.Extract(string(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adorn.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(result.Outline, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))

	if c.Out != "" {
		if err := os.WriteFile(c.Out, []byte(result.HTML), 0644); err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot write %q: %v\n", c.Out, err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote annotated HTML to %s\n", c.Out)
	}

	return nil
}
