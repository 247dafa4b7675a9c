// Command schema writes JSON schema of the curator configuration, used by go:generate in pkg/config
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/umputun/curator/pkg/config"
)

type opts struct {
	Args struct {
		Output string `positional-arg-name:"output" description:"output file, schema.json by default"`
	} `positional-args:"yes"`
	Stdout bool `long:"stdout" description:"print schema instead of writing the file"`
}

func main() {
	var o opts
	if _, err := flags.Parse(&o); err != nil {
		os.Exit(1)
	}
	if err := generate(o); err != nil {
		fmt.Fprintf(os.Stderr, "schema: %v\n", err)
		os.Exit(1)
	}
}

func generate(o opts) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if o.Stdout {
		_, err = fmt.Println(string(data))
		return err
	}
	output := o.Args.Output
	if output == "" {
		output = "schema.json"
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("schema written to %s\n", output)
	return nil
}
