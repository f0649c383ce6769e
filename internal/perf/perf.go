package perf

import (
	"bytes"
	"context"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/bmizerany/perks/quantile"
	"github.com/dustin/go-humanize"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/thepudds/robinhood"
)

const (
	HashMaphash = "maphash"
	HashXXH3    = "xxh3"
	HashXXHash  = "xxhash"
)

type Config struct {
	Keys           int           `mapstructure:"keys"`
	Ops            int           `mapstructure:"ops"`
	ReadPercent    float64       `mapstructure:"read-percent"`
	ErasePercent   float64       `mapstructure:"erase-percent"`
	Hash           string        `mapstructure:"hash"`
	Rate           float64       `mapstructure:"rate"`
	ValueSize      int           `mapstructure:"value-size"`
	Verify         bool          `mapstructure:"verify"`
	ReportInterval time.Duration `mapstructure:"report-interval"`
	Seed           uint64        `mapstructure:"seed"`
}

func NewConfig() Config {
	return Config{
		Keys:           100_000,
		Ops:            1_000_000,
		ReadPercent:    60,
		ErasePercent:   10,
		Hash:           HashMaphash,
		ValueSize:      32,
		ReportInterval: 10 * time.Second,
		Seed:           1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Keys <= 0:
		return errors.Errorf("keys must be positive, got %d", c.Keys)
	case c.Ops < 0:
		return errors.Errorf("ops must not be negative, got %d", c.Ops)
	case c.ReadPercent < 0 || c.ErasePercent < 0 || c.ReadPercent+c.ErasePercent > 100:
		return errors.Errorf("read-percent (%v) and erase-percent (%v) must be non-negative and sum to at most 100",
			c.ReadPercent, c.ErasePercent)
	case c.Rate < 0:
		return errors.Errorf("rate must not be negative, got %v", c.Rate)
	case c.ValueSize < 0:
		return errors.Errorf("value-size must not be negative, got %d", c.ValueSize)
	}
	_, err := HashFunc(c.Hash)
	return err
}

// HashFunc returns the string hash registered under name.
func HashFunc(name string) (robinhood.HashFunc[string], error) {
	switch name {
	case HashMaphash, "":
		return robinhood.ComparableHash[string](maphash.MakeSeed()), nil
	case HashXXH3:
		return robinhood.XXH3[string], nil
	case HashXXHash:
		return robinhood.XXHash[string], nil
	}
	return nil, errors.Errorf("unknown hash %q, expected one of %s, %s, %s", name, HashMaphash, HashXXH3, HashXXHash)
}

// Report summarizes a run.
type Report struct {
	Ops     int
	Reads   int
	Hits    int
	Writes  int
	Erases  int
	Elapsed time.Duration

	Stats robinhood.Stats

	// PSL quantiles over the final table, keyed by target.
	PSL map[float64]float64
}

var pslTargets = []float64{0.50, 0.95, 0.99, 0.999, 1.0}

type Perf interface {
	Run(context.Context) (Report, error)
}

func New(config Config) Perf {
	return &perf{
		config: config,
	}
}

type perf struct {
	config Config
	keys   []string
	rng    *rand.Rand

	m *robinhood.Map[string, []byte]
	// mirror is only set with Verify.
	mirror *treemap.Map

	report Report
}

func (p *perf) Run(ctx context.Context) (Report, error) {
	if err := p.config.Validate(); err != nil {
		return Report{}, err
	}
	log.Info().
		Interface("config", p.config).
		Msg("Starting robinhood perf")

	hashFunc, err := HashFunc(p.config.Hash)
	if err != nil {
		return Report{}, err
	}
	p.m = robinhood.New[string, []byte](robinhood.WithHash(hashFunc))
	if p.config.Verify {
		p.mirror = treemap.NewWithStringComparator()
	}
	p.rng = rand.New(rand.NewPCG(p.config.Seed, p.config.Seed))
	p.keys = make([]string, p.config.Keys)
	for i := range p.keys {
		p.keys[i] = fmt.Sprintf("key-%d", i)
	}

	var limiter *rate.Limiter
	if p.config.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.config.Rate), max(1, int(p.config.Rate)))
	}

	start := time.Now()
	lastReport := start
	last := p.report
	for p.config.Ops == 0 || p.report.Ops < p.config.Ops {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		if err := p.step(); err != nil {
			return p.report, err
		}

		if p.config.ReportInterval > 0 && time.Since(lastReport) >= p.config.ReportInterval {
			p.logInterval(last, time.Since(lastReport))
			last, lastReport = p.report, time.Now()
		}
	}
	p.report.Elapsed = time.Since(start)

	if p.config.Verify {
		if err := p.verifyAll(); err != nil {
			return p.report, err
		}
	}

	p.report.Stats = p.m.Stats()
	p.report.PSL = pslQuantiles(p.report.Stats)
	p.logFinal()
	return p.report, nil
}

// step runs one randomly chosen operation.
func (p *perf) step() error {
	key := p.keys[p.rng.IntN(len(p.keys))]
	r := p.rng.Float64() * 100
	p.report.Ops++

	switch {
	case r < p.config.ReadPercent:
		p.report.Reads++
		v, ok := p.m.Get(key)
		if ok {
			p.report.Hits++
		}
		log.Debug().Str("key", key).Bool("found", ok).Msg("Get")
		if p.mirror != nil {
			want, wantOk := p.mirror.Get(key)
			if ok != wantOk || (ok && !bytes.Equal(v, want.([]byte))) {
				return errors.Errorf("verify: get %q = %q, %v. want %v, %v", key, v, ok, want, wantOk)
			}
		}

	case r < p.config.ReadPercent+p.config.ErasePercent:
		p.report.Erases++
		ok := p.m.Delete(key)
		log.Debug().Str("key", key).Bool("found", ok).Msg("Delete")
		if p.mirror != nil {
			_, wantOk := p.mirror.Get(key)
			p.mirror.Remove(key)
			if ok != wantOk {
				return errors.Errorf("verify: delete %q = %v, want %v", key, ok, wantOk)
			}
		}

	default:
		p.report.Writes++
		value := p.value()
		*p.m.Index(key) = value
		log.Debug().Str("key", key).Int("len", p.m.Len()).Msg("Write")
		if p.mirror != nil {
			p.mirror.Put(key, value)
		}
	}
	return nil
}

// value returns a fresh value tagged with the current op number.
func (p *perf) value() []byte {
	v := make([]byte, p.config.ValueSize)
	copy(v, strconv.Itoa(p.report.Ops))
	return v
}

// verifyAll checks that the map and the mirror hold the same entries.
func (p *perf) verifyAll() error {
	if p.m.Len() != p.mirror.Size() {
		return errors.Errorf("verify: len = %d, want %d", p.m.Len(), p.mirror.Size())
	}
	it := p.mirror.Iterator()
	for it.Next() {
		key := it.Key().(string)
		v, err := p.m.At(key)
		if err != nil {
			return errors.Wrap(err, "verify")
		}
		if !bytes.Equal(v, it.Value().([]byte)) {
			return errors.Errorf("verify: value for %q = %q, want %q", key, v, it.Value())
		}
	}
	for k := range p.m.Keys() {
		if _, ok := p.mirror.Get(k); !ok {
			return errors.Errorf("verify: unexpected key %q", k)
		}
	}
	log.Info().
		Str("entries", humanize.Comma(int64(p.m.Len()))).
		Msg("Verified map against reference")
	return nil
}

func pslQuantiles(st robinhood.Stats) map[float64]float64 {
	q := quantile.NewTargeted(pslTargets...)
	for d, count := range st.PSLCounts {
		for range count {
			q.Insert(float64(d))
		}
	}
	res := make(map[float64]float64, len(pslTargets))
	for _, t := range pslTargets {
		res[t] = q.Query(t)
	}
	return res
}

func (p *perf) logInterval(last Report, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	ops := float64(p.report.Ops-last.Ops) / seconds
	reads := float64(p.report.Reads-last.Reads) / seconds
	writes := float64(p.report.Writes-last.Writes) / seconds
	erases := float64(p.report.Erases-last.Erases) / seconds

	st := p.m.Stats()
	psl := pslQuantiles(st)
	log.Info().Msgf(`Stats - Total ops: %s ops/s - Len: %s - Cap: %s
	Read ops %8.1f r/s  Write ops %8.1f w/s  Erase ops %8.1f e/s
	PSL: 50%% %4.1f - 95%% %4.1f - 99%% %4.1f - 99.9%% %4.1f - max %4.1f`,
		humanize.CommafWithDigits(ops, 1),
		humanize.Comma(int64(st.Len)),
		humanize.Comma(int64(st.Cap)),
		reads, writes, erases,
		psl[0.5], psl[0.95], psl[0.99], psl[0.999], psl[1.0],
	)
}

func (p *perf) logFinal() {
	st := p.report.Stats
	log.Info().
		Str("ops", humanize.Comma(int64(p.report.Ops))).
		Str("reads", humanize.Comma(int64(p.report.Reads))).
		Str("hits", humanize.Comma(int64(p.report.Hits))).
		Str("writes", humanize.Comma(int64(p.report.Writes))).
		Str("erases", humanize.Comma(int64(p.report.Erases))).
		Dur("elapsed", p.report.Elapsed).
		Int("len", st.Len).
		Int("cap", st.Cap).
		Int("grows", st.Grows).
		Int("max-psl", st.MaxPSL).
		Float64("mean-psl", st.MeanPSL).
		Str("table-size", humanize.Bytes(uint64(st.Cap)*uint64(st.SlotSize))).
		Msg("Perf run finished")
}
