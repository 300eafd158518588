package sim

import (
	"fmt"
	"strings"
)

// Policy selects the next request a tier sends the head to.
// The set of policies is closed; Select dispatches over all of them.
type Policy int

// NoPolicy marks an absent tier: a PolicyConfig whose RealtimePolicy is
// NoPolicy runs single-tier.
const NoPolicy Policy = -1

const (
	FirstComeFirstServed Policy = iota
	ShortestSeekTimeFirst
	Scan
	CScan
	EarliestDeadlineFirst
	FeasibleDeadlineScan
)

// AllPolicies lists every policy in declaration order.
var AllPolicies = []Policy{
	FirstComeFirstServed,
	ShortestSeekTimeFirst,
	Scan,
	CScan,
	EarliestDeadlineFirst,
	FeasibleDeadlineScan,
}

var policyNames = map[Policy]string{
	FirstComeFirstServed:  "FirstComeFirstServed",
	ShortestSeekTimeFirst: "ShortestSeekTimeFirst",
	Scan:                  "Scan",
	CScan:                 "CScan",
	EarliestDeadlineFirst: "EarliestDeadlineFirst",
	FeasibleDeadlineScan:  "FeasibleDeadlineScan",
}

// policyAliases maps lower-cased CLI spellings to policies.
var policyAliases = map[string]Policy{
	"fcfs":    FirstComeFirstServed,
	"sstf":    ShortestSeekTimeFirst,
	"scan":    Scan,
	"cscan":   CScan,
	"c-scan":  CScan,
	"edf":     EarliestDeadlineFirst,
	"fdscan":  FeasibleDeadlineScan,
	"fd-scan": FeasibleDeadlineScan,
}

func init() {
	for p, name := range policyNames {
		policyAliases[strings.ToLower(name)] = p
	}
}

func (p Policy) String() string {
	if p == NoPolicy {
		return "none"
	}
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// IsDeadlinePolicy reports whether p orders requests by deadline. Only
// deadline policies may drive the real-time tier, and only the others may
// drive the best-effort tier.
func (p Policy) IsDeadlinePolicy() bool {
	return p == EarliestDeadlineFirst || p == FeasibleDeadlineScan
}

// IsSweep reports whether the head keeps moving under p when nothing is selectable.
func (p Policy) IsSweep() bool {
	return p == Scan || p == CScan
}

// ParsePolicy resolves a policy from its full name or a common abbreviation.
// Matching is case-insensitive; "" and "none" resolve to NoPolicy.
func ParsePolicy(name string) (Policy, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "none") {
		return NoPolicy, nil
	}
	if p, ok := policyAliases[strings.ToLower(name)]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown policy %q; valid: fcfs, sstf, scan, cscan, edf, fdscan", name)
}

// IsValidPolicy returns true if name resolves to a policy other than NoPolicy.
func IsValidPolicy(name string) bool {
	p, err := ParsePolicy(name)
	return err == nil && p != NoPolicy
}

// Select returns the request policy p would serve next from ready, or nil.
// It never mutates the device or the slice; the caller removes the winner.
func Select(p Policy, ready []*Request, dev *Device) *Request {
	if len(ready) == 0 {
		return nil
	}
	switch p {
	case FirstComeFirstServed:
		return selectFCFS(ready)
	case ShortestSeekTimeFirst:
		return selectSSTF(ready, dev)
	case Scan:
		return selectScan(ready, dev)
	case CScan:
		return selectCScan(ready, dev)
	case EarliestDeadlineFirst:
		return selectEDF(ready)
	case FeasibleDeadlineScan:
		return selectFDScan(ready, dev)
	default:
		panic(fmt.Sprintf("Select: unhandled policy %v", p))
	}
}

func selectFCFS(ready []*Request) *Request {
	best := ready[0]
	for _, r := range ready[1:] {
		if r.ArrivalTime < best.ArrivalTime || (r.ArrivalTime == best.ArrivalTime && r.ID < best.ID) {
			best = r
		}
	}
	return best
}

func selectSSTF(ready []*Request, dev *Device) *Request {
	best := ready[0]
	bestDist := dev.Distance(best.Track)
	for _, r := range ready[1:] {
		if d := dev.Distance(r.Track); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

func selectScan(ready []*Request, dev *Device) *Request {
	var best *Request
	for _, r := range ready {
		if dev.ScanRight {
			if r.Track >= dev.CurrentTrack && (best == nil || r.Track < best.Track) {
				best = r
			}
		} else {
			if r.Track <= dev.CurrentTrack && (best == nil || r.Track > best.Track) {
				best = r
			}
		}
	}
	return best
}

func selectCScan(ready []*Request, dev *Device) *Request {
	var best *Request
	for _, r := range ready {
		if r.Track >= dev.CurrentTrack && (best == nil || r.Track < best.Track) {
			best = r
		}
	}
	return best
}

func selectEDF(ready []*Request) *Request {
	best := ready[0]
	for _, r := range ready[1:] {
		if r.DeadlineTime < best.DeadlineTime {
			best = r
		}
	}
	return best
}

// selectFDScan returns the earliest-deadline request among those the head can
// still reach in time.
func selectFDScan(ready []*Request, dev *Device) *Request {
	var best *Request
	for _, r := range ready {
		if !IsFeasible(r, dev) {
			continue
		}
		if best == nil || r.DeadlineTime < best.DeadlineTime {
			best = r
		}
	}
	return best
}

// IsFeasible reports whether seeking to req from the current head position
// would finish no later than its deadline.
func IsFeasible(req *Request, dev *Device) bool {
	return req.DeadlineTime >= dev.Clock+int64(dev.Distance(req.Track))
}
