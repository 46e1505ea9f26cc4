package launch

import (
	"log"

	"github.com/olivierh59500/gravity-grid-go/sim"
)

// Report sums up a headless run.
type Report struct {
	Frames      int
	ActiveCount int
	Total       int
	Candidates  int // Narrow phase calls over the whole run
	Contacts    int
}

// RunHeadless advances s by frames fixed steps of dt without a window.
// Progress is logged every logEvery frames; 0 disables it.
func RunHeadless(s *sim.Simulation, frames int, dt float64, logEvery int, logger *log.Logger) Report {
	var rep Report
	for i := 1; i <= frames; i++ {
		s.AdvanceFrame(dt)
		st := s.Stats()
		rep.Candidates += st.Candidates
		rep.Contacts += st.Contacts

		if logEvery > 0 && i%logEvery == 0 {
			logger.Printf("frame %d: active %d/%d, candidates %d, contacts %d",
				i, s.ActiveCount(), s.Len(), st.Candidates, st.Contacts)
		}
	}
	rep.Frames = frames
	rep.ActiveCount = s.ActiveCount()
	rep.Total = s.Len()
	return rep
}
