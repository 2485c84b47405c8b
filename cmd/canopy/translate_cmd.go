package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/canopyml/canopy/model"
	"github.com/spf13/cobra"
)

type translateCmdConfig struct {
	*rootCmdConfig
	documentInput string
	mainTable     string
	altTable      string
	featureCount  int
	indent        int
}

func translateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &translateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate the feature indices of a serialized decision tree",
		Long:  `Reads a serialized binary decision-tree document and maps its feature indices through a pair of translation tables, undoing any reordering or sign-flipping introduced upstream`,
		Run: func(cmd *cobra.Command, args []string) {
			mainTable, err := parseTable(config.mainTable)
			if err != nil {
				fmt.Fprintf(os.Stderr, "parsing main translation table: %v\n", err)
				os.Exit(1)
			}
			alternate, err := parseTable(config.altTable)
			if err != nil {
				fmt.Fprintf(os.Stderr, "parsing alternate translation table: %v\n", err)
				os.Exit(1)
			}
			doc, err := config.readDocument()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			logger(config.verbose).Logf("translating document from %s through %d-entry tables...", config.documentSource(), len(mainTable))
			translated, err := model.Translate(doc, mainTable, alternate, config.featureCount)
			if err != nil {
				fmt.Fprintf(os.Stderr, "translating tree document: %v\n", err)
				os.Exit(3)
			}
			output, err := renderDocument(translated, config.indent)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Println(output)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.documentInput), "input", "i", "", "path to the serialized tree document (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.mainTable), "main", "m", "", "comma-separated main translation table of canonical indices")
	cmd.PersistentFlags().StringVarP(&(config.altTable), "alternate", "a", "", "comma-separated alternate translation table")
	cmd.PersistentFlags().IntVarP(&(config.featureCount), "features", "f", 0, "total binary feature count used to offset predictions")
	cmd.PersistentFlags().IntVarP(&(config.indent), "indent", "n", 2, "number of spaces to indent the output with, 0 for compact output")
	return cmd
}

func (tcc *translateCmdConfig) readDocument() (*model.Node, error) {
	var data []byte
	var err error
	if tcc.documentInput == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(tcc.documentInput)
	}
	if err != nil {
		return nil, fmt.Errorf("reading tree document from %s: %v", tcc.documentSource(), err)
	}
	doc := &model.Node{}
	if err = json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing tree document from %s: %v", tcc.documentSource(), err)
	}
	return doc, nil
}

func (tcc *translateCmdConfig) documentSource() string {
	if tcc.documentInput == "" {
		return "STDIN"
	}
	return tcc.documentInput
}

func parseTable(table string) (model.Translation, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("no table given")
	}
	entries := strings.Split(table, ",")
	translation := make(model.Translation, 0, len(entries))
	for _, entry := range entries {
		value, err := strconv.Atoi(strings.TrimSpace(entry))
		if err != nil {
			return nil, fmt.Errorf("invalid table entry %q: %v", entry, err)
		}
		translation = append(translation, value)
	}
	return translation, nil
}
