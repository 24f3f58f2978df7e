// Package profile switches between the Gio frame profiler and pkg/profile
// from a single command line option.
package profile

import (
	"fmt"
	"log"

	"gioui.org/layout"
	"gioui.org/x/profiling"
	"github.com/pkg/profile"
)

// Opt specifies the various profiling options.
type Opt string

const (
	None      Opt = "none"
	CPU       Opt = "cpu"
	Memory    Opt = "mem"
	Block     Opt = "block"
	Goroutine Opt = "goroutine"
	Mutex     Opt = "mutex"
	Trace     Opt = "trace"
	Gio       Opt = "gio"
)

// Opts lists every option, for flag help.
var Opts = []Opt{None, CPU, Memory, Block, Goroutine, Mutex, Trace, Gio}

// Set implements flag.Value.
func (p *Opt) Set(s string) error {
	for _, o := range Opts {
		if Opt(s) == o {
			*p = o
			return nil
		}
	}
	return fmt.Errorf("unknown profile %q, want one of %v", s, Opts)
}

func (p *Opt) String() string {
	if p == nil || *p == "" {
		return string(None)
	}
	return string(*p)
}

// Profiler is a running profile.
type Profiler struct {
	stop     func()
	recorder *profiling.CSVTimingRecorder
}

// Start profiling according to the option. Stop the returned profiler before
// exiting to flush the results.
func (p Opt) Start() *Profiler {
	var mode func(*profile.Profile)
	switch p {
	case "", None:
		return &Profiler{}
	case CPU:
		mode = profile.CPUProfile
	case Memory:
		mode = profile.MemProfile
	case Block:
		mode = profile.BlockProfile
	case Goroutine:
		mode = profile.GoroutineProfile
	case Mutex:
		mode = profile.MutexProfile
	case Trace:
		mode = profile.TraceProfile
	case Gio:
		recorder, err := profiling.NewRecorder(nil)
		if err != nil {
			log.Printf("starting profiler: %v", err)
			return &Profiler{}
		}
		return &Profiler{recorder: recorder}
	default:
		log.Printf("unknown profile %q, not profiling", p)
		return &Profiler{}
	}
	return &Profiler{stop: profile.Start(mode, profile.NoShutdownHook).Stop}
}

// Record GUI stats for the frame. A no-op unless profiling Gio.
func (p *Profiler) Record(gtx layout.Context) {
	if p.recorder != nil {
		p.recorder.Profile(gtx)
	}
}

// Stop profiling and flush the results.
func (p *Profiler) Stop() {
	if p.stop != nil {
		p.stop()
	}
	if p.recorder != nil {
		if err := p.recorder.Stop(); err != nil {
			log.Printf("stopping profiler: %v", err)
		}
	}
}
