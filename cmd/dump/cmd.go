package dump

import (
	"fmt"
	"hash/maphash"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thepudds/robinhood"
)

var Cmd = NewCmd()

type config struct {
	count  int
	hash   string
	erase  []int64
	values bool
}

// NewCmd returns the dump command with its own flag state.
func NewCmd() *cobra.Command {
	var conf config
	cmd := &cobra.Command{
		Use:   "dump [key...]",
		Short: "Print the slot layout of a map",
		Long: `Insert integer keys into a map, optionally erase some of them, and print
every slot with its probe sequence length and home slot`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 && conf.count > 0 {
				return errors.New("keys and --count are mutually exclusive")
			}
			if conf.count < 0 {
				return errors.Errorf("count must not be negative, got %d", conf.count)
			}
			_, err := hashFunc(conf.hash)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return exec(cmd, args, conf)
		},
	}
	cmd.Flags().IntVarP(&conf.count, "count", "n", 0, "Insert keys 0..count-1 instead of the given keys")
	cmd.Flags().StringVar(&conf.hash, "hash", "identity", "Hash function: identity or maphash")
	cmd.Flags().Int64SliceVarP(&conf.erase, "erase", "e", nil, "Keys to erase after inserting")
	cmd.Flags().BoolVar(&conf.values, "values", false, "Also print each key's value")
	return cmd
}

func hashFunc(name string) (robinhood.HashFunc[int64], error) {
	switch name {
	case "identity":
		return robinhood.Identity[int64], nil
	case "maphash":
		return robinhood.ComparableHash[int64](maphash.MakeSeed()), nil
	}
	return nil, errors.Errorf("unknown hash %q, expected identity or maphash", name)
}

func parseKeys(args []string, count int) ([]int64, error) {
	if count > 0 {
		keys := make([]int64, count)
		for i := range keys {
			keys[i] = int64(i)
		}
		return keys, nil
	}
	keys := make([]int64, 0, len(args))
	for _, a := range args {
		k, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid key %q", a)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func exec(cmd *cobra.Command, args []string, conf config) error {
	keys, err := parseKeys(args, conf.count)
	if err != nil {
		return err
	}
	fn, err := hashFunc(conf.hash)
	if err != nil {
		return err
	}

	m := robinhood.New[int64, int64](robinhood.WithHash(fn))
	for i, k := range keys {
		if !m.Insert(k, int64(i)) {
			log.Debug().Int64("key", k).Msg("Duplicate key ignored")
		}
	}
	for _, k := range conf.erase {
		if !m.Delete(k) {
			log.Warn().Int64("key", k).Msg("Key to erase not found")
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprint(out, m.DebugString())
	if conf.values {
		for it := m.Begin(); !it.Done(); it.Next() {
			_, _ = fmt.Fprintf(out, "%d=%d\n", it.Key(), it.Value())
		}
	}
	st := m.Stats()
	_, _ = fmt.Fprintf(out, "max psl=%d  mean psl=%.2f\n", st.MaxPSL, st.MeanPSL)
	return nil
}
