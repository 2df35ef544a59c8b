package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bitzorro/relstring/internal/match"
	"github.com/bitzorro/relstring/internal/parser"
)

var (
	batchShowType string
	batchWorkers  int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse release names from stdin, one per line, and print a JSON array",
	RunE: func(cmd *cobra.Command, args []string) error {
		hint, err := match.ParseShowType(batchShowType)
		if err != nil {
			return err
		}
		if batchWorkers < 1 {
			batchWorkers = 1
		}

		var names []string
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				names = append(names, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		p := newParser()
		cache := newCache(p)
		results := make([]parser.Result, len(names))

		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < batchWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = cache.Parse(names[i], hint)
				}
			}()
		}
		for i := range names {
			jobs <- i
		}
		close(jobs)
		wg.Wait()

		log.WithFields(map[string]any{
			"names":  len(names),
			"cached": cache.Len(),
		}).Debug("batch parse finished")

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchShowType, "type", "", "show type hint applied to every name")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of concurrent parse workers")
	rootCmd.AddCommand(batchCmd)
}
