package puzzle

import (
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/piecemaker/pkg/errors"
)

// Options configures puzzle generation.
type Options struct {
	// TabDepthRatio is the fraction of the shorter piece dimension used as
	// the tab depth. Defaults to DefaultTabDepthRatio (0.15).
	TabDepthRatio float64

	// Tolerance is the adjacency slack in pixels. Defaults to
	// DefaultTolerance (1); segmentation-derived tables should pass
	// SegmentationTolerance (5).
	Tolerance int

	// Workers bounds the number of goroutines used for per-piece geometry
	// and mask synthesis. Defaults to GOMAXPROCS, capped at the piece
	// count. Edge assignment always runs single-threaded: it performs
	// write-once mutation of slots shared between neighboring regions.
	Workers int

	// Logger receives per-stage progress. Defaults to a discarding logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks the configuration and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TabDepthRatio == 0 {
		o.TabDepthRatio = DefaultTabDepthRatio
	}
	if err := errors.ValidateTabDepthRatio(o.TabDepthRatio); err != nil {
		return err
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if err := errors.ValidateTolerance(o.Tolerance); err != nil {
		return err
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Generate transforms a region table into interlocking puzzle pieces.
//
// Resolution, assignment, and verification run sequentially; once the
// global edge assignment is complete each piece depends only on its own
// region and borders, so geometry extension and mask synthesis fan out
// over a bounded worker pool. Output order matches input order and the
// whole computation is deterministic: the same regions and options always
// produce byte-identical pieces.
//
// Recoverable conditions (a region too small for any visible tab) degrade
// that piece to flat-shaped borders and generation continues. Everything
// else (ambiguous adjacency, non-complementary edges, mask/geometry
// disagreement, incomplete records) aborts the whole batch: a puzzle
// either fits together completely or the attempt must be retried.
func Generate(regions []Region, opts Options) ([]Piece, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "region table is empty")
	}
	if err := validateRegions(regions); err != nil {
		return nil, err
	}

	adjacencies, err := Resolve(regions, opts.Tolerance)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("resolved adjacencies", "regions", len(regions), "borders", len(adjacencies))

	assignment, err := Assign(regions, adjacencies)
	if err != nil {
		return nil, err
	}
	if err := Verify(regions, adjacencies, assignment); err != nil {
		return nil, err
	}

	borders, candidates := resolveBorders(regions, adjacencies, opts)

	pieces := make([]Piece, len(regions))
	errs := make([]error, len(regions))

	workers := min(opts.Workers, len(regions))
	var wg sync.WaitGroup
	jobs := make(chan int)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				pieces[i], errs[i] = buildPiece(regions[i], assignment, borders[regions[i].ID], candidates[regions[i].ID])
			}
		}()
	}
	for i := range regions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	opts.Logger.Debug("synthesized pieces", "pieces", len(pieces), "workers", workers)
	return pieces, nil
}

// validateRegions checks ids and dimensions and rejects duplicates.
func validateRegions(regions []Region) error {
	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		if err := errors.ValidateRegionID(r.ID); err != nil {
			return err
		}
		if err := errors.ValidateDimensions(r.ID, r.Width, r.Height); err != nil {
			return err
		}
		if _, dup := seen[r.ID]; dup {
			return errors.New(errors.ErrCodeInvalidRegion, "duplicate region id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// resolveBorders computes the per-side interlock parameters of every
// region. Each shared border uses one canonical size, the smaller of the
// two pieces' candidate sizes, carried identically on both facing sides,
// so unequal neighbors still produce congruent bump and bite shapes. A
// zero candidate (degenerate tiny region) flows through as a zero border
// size: the affected borders render flat-shaped, on both pieces, and the
// batch continues.
func resolveBorders(regions []Region, adjacencies []Adjacency, opts Options) (map[string]Borders, map[string]int) {
	candidates := make(map[string]int, len(regions))
	for _, r := range regions {
		size := CandidateTabSize(r, opts.TabDepthRatio)
		if size == 0 {
			opts.Logger.Warn("region too small for tabs, borders degrade to flat shapes",
				"region", r.ID, "size", r.Width, "x", r.Height)
		}
		candidates[r.ID] = size
	}

	borders := make(map[string]Borders, len(regions))
	for _, r := range regions {
		borders[r.ID] = Borders{}
	}
	for _, adj := range adjacencies {
		size := min(candidates[adj.A], candidates[adj.B])
		ba := borders[adj.A]
		ba[adj.SideA] = SideInfo{Size: size, Mid: adj.Mid}
		borders[adj.A] = ba
		bb := borders[adj.B]
		bb[adj.SideB] = SideInfo{Size: size, Mid: adj.Mid}
		borders[adj.B] = bb
	}
	return borders, candidates
}

// buildPiece runs the per-piece stages: extend, synthesize, guard, and
// assemble. Inputs are read-only by this point, so pieces build in
// parallel without synchronization.
func buildPiece(r Region, assignment *Assignment, borders Borders, candidate int) (Piece, error) {
	edges, ok := assignment.Edges(r.ID)
	if !ok {
		return Piece{}, errors.New(errors.ErrCodeIncompletePiece,
			"region %q has no completed edge assignment", r.ID)
	}

	geo := Extend(r, edges, borders)
	geo.TabSize = candidate

	mask, err := Synthesize(r, edges, geo)
	if err != nil {
		return Piece{}, err
	}

	// Historically the dominant defect class: a mask canvas that disagrees
	// with the extended box corrupts rendering much later. Guarded here,
	// immediately after synthesis.
	if mask.Width() != geo.FinalWidth || mask.Height() != geo.FinalHeight {
		return Piece{}, errors.New(errors.ErrCodeMaskMismatch,
			"region %q: mask canvas %dx%d disagrees with final box %dx%d",
			r.ID, mask.Width(), mask.Height(), geo.FinalWidth, geo.FinalHeight)
	}

	return Assemble(r, edges, geo, mask)
}
