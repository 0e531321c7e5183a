package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/happyhackingspace/lexis"
)

const (
	formatAuto  = "auto"
	formatJSON  = "json"
	formatTable = "table"
)

func (c *CLI) newScoreCommand() *cobra.Command {
	var topK int
	var format string
	var dir string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "score <category> <word>",
		Short: "Score a word against a category and list the top words by each statistic",
		Args:  cobra.ExactArgs(2),
		Example: `  # Score "rocket" in the space category
  lexis score space rocket

  # Top 10 words as JSON
  lexis score space rocket --top-k 10 --format json

  # List the chi-squared ranking first
  lexis score space rocket --sort chi2

  # Use a directory with one subdirectory per category
  lexis score recipes garlic --dir ./documents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatAuto && format != formatJSON && format != formatTable {
				return fmt.Errorf("unknown format %q (want auto, json or table)", format)
			}
			first, err := lexis.ParseStatistic(sortBy)
			if err != nil {
				return err
			}
			src, closeSource, err := c.openSource(dir)
			if err != nil {
				return err
			}
			defer closeSource()

			opts := append(c.analyzerOptions(), lexis.WithObserver(lexis.LogObserver(slog.Default(), slog.LevelDebug)))
			res := lexis.New(src, opts...).Analyze(cmd.Context(), args[0], args[1], topK)

			if err := c.writeResult(res, format, first); err != nil {
				return err
			}
			if res.Error != "" {
				return errors.New(res.Error)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of top words per statistic (default: score.top_k from config)")
	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "Output format: auto, json or table")
	cmd.Flags().StringVar(&dir, "dir", "", "Read categories from subdirectories of this directory")
	cmd.Flags().StringVarP(&sortBy, "sort", "S", string(lexis.ByFrequency), "Ranking shown first in table output: freq, mi or chi2")
	return cmd
}

func (c *CLI) writeResult(res lexis.Result, format string, first lexis.Statistic) error {
	if format == formatAuto {
		format = formatJSON
		if isTerminal(c.stdout) {
			format = formatTable
		}
	}
	if format == formatTable {
		c.printf("%s", renderResult(res, first))
		return nil
	}
	output, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	c.printf("%s\n", output)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderResult(res lexis.Result, first lexis.Statistic) string {
	if res.Error != "" {
		return fmt.Sprintf("Category %q, word %q: %s\n", res.Category, res.InputWord.Word, res.Error)
	}
	out := fmt.Sprintf("Category: %s\n\n", res.Category)
	out += "Input word\n" + renderWordStats([]lexis.WordStat{res.InputWord}, false) + "\n"
	for _, stat := range statOrder(first) {
		out += fmt.Sprintf("\nTop words by %s\n", statTitle(stat))
		out += renderWordStats(res.TopWords.By(stat), true) + "\n"
	}
	return out
}

// statOrder lists every statistic with first moved to the front.
func statOrder(first lexis.Statistic) []lexis.Statistic {
	order := []lexis.Statistic{first}
	for _, stat := range lexis.Statistics {
		if stat != first {
			order = append(order, stat)
		}
	}
	return order
}

func statTitle(stat lexis.Statistic) string {
	switch stat {
	case lexis.ByMutualInformation:
		return "mutual information"
	case lexis.ByChiSquared:
		return "chi-squared"
	default:
		return "frequency"
	}
}

func renderWordStats(words []lexis.WordStat, ranked bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := table.Row{"Word", "Frequency", "Mutual information", "Chi-squared"}
	if ranked {
		header = append(table.Row{"#"}, header...)
	}
	tw.AppendHeader(header)
	for i, w := range words {
		row := table.Row{
			w.Word,
			strconv.Itoa(w.Frequency),
			strconv.FormatFloat(w.MutualInformation, 'f', 6, 64),
			strconv.FormatFloat(w.ChiSquared, 'f', 4, 64),
		}
		if ranked {
			row = append(table.Row{strconv.Itoa(i + 1)}, row...)
		}
		tw.AppendRow(row)
	}

	offset := 1
	if ranked {
		offset = 2
	}
	configs := []table.ColumnConfig{}
	for i := offset + 1; i <= offset+3; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
