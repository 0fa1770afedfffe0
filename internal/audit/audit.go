package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/nikbrunner/lbl/internal/scan"
	"github.com/spf13/afero"
)

// Status represents the state of one image's copies in the output directory.
type Status int

const (
	OK        Status = iota // exactly one copy, in the recorded category
	Missing                 // recorded as classified, but no copy exists
	Stray                   // single copy in a category other than the recorded one
	Duplicate               // copies in two or more categories
	Stale                   // copy size differs from the source image
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Stray:
		return "stray"
	case Duplicate:
		return "duplicate"
	case Stale:
		return "stale"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result holds the check result for a single image.
type Result struct {
	Image    string
	Recorded string   // category the labels say, "" if unclassified
	Found    []string // categories holding a copy, in declaration order
	Status   Status
	Detail   string
}

// ProgressFunc is called after each image is checked.
type ProgressFunc func(completed, total int)

// Params describes what to verify.
type Params struct {
	Fs          afero.Fs
	SourceDir   string
	OutputDir   string
	Categories  []string
	Labels      map[string]string // image name -> category
	Concurrency int
	OnProgress  ProgressFunc
}

// Check compares the recorded labels with the copies present under OutputDir.
// Results are sorted by image name.
func Check(params Params) ([]Result, error) {
	fs := params.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	concurrency := params.Concurrency
	if concurrency < 1 {
		concurrency = 4
	}

	found, err := collectCopies(fs, params.OutputDir, params.Categories)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(found)+len(params.Labels))
	seen := make(map[string]bool)
	for name := range params.Labels {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range found {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, nil
	}

	results := make([]Result, len(names))
	jobs := make(chan int, len(names))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				name := names[idx]
				results[idx] = checkImage(fs, params, name, found[name])

				if params.OnProgress != nil {
					progressMu.Lock()
					completed++
					params.OnProgress(completed, len(names))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results, nil
}

// collectCopies lists image files per category directory.
// Missing category directories hold no copies.
func collectCopies(fs afero.Fs, outputDir string, categories []string) (map[string][]string, error) {
	found := make(map[string][]string)
	for _, cat := range categories {
		dir := filepath.Join(outputDir, cat)
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !scan.IsSupported(e.Name()) {
				continue
			}
			found[e.Name()] = append(found[e.Name()], cat)
		}
	}
	return found, nil
}

// checkImage classifies a single image's on-disk state.
func checkImage(fs afero.Fs, params Params, name string, found []string) Result {
	result := Result{
		Image:    name,
		Recorded: params.Labels[name],
		Found:    found,
	}

	switch {
	case len(found) > 1:
		result.Status = Duplicate
		result.Detail = fmt.Sprintf("copies in %d categories", len(found))
		return result
	case len(found) == 0:
		result.Status = Missing
		result.Detail = fmt.Sprintf("no copy in %s", result.Recorded)
		return result
	case found[0] != result.Recorded:
		result.Status = Stray
		if result.Recorded == "" {
			result.Detail = fmt.Sprintf("unrecorded copy in %s", found[0])
		} else {
			result.Detail = fmt.Sprintf("copy in %s, recorded %s", found[0], result.Recorded)
		}
		return result
	}

	src, err := fs.Stat(filepath.Join(params.SourceDir, name))
	if err != nil {
		result.Status = Stray
		result.Detail = "no source image"
		return result
	}
	dst, err := fs.Stat(filepath.Join(params.OutputDir, found[0], name))
	if err != nil {
		result.Status = Missing
		result.Detail = err.Error()
		return result
	}
	if src.Size() != dst.Size() {
		result.Status = Stale
		result.Detail = fmt.Sprintf("size %d, source %d", dst.Size(), src.Size())
		return result
	}

	result.Status = OK
	return result
}

// Summarize counts results per status.
func Summarize(results []Result) map[Status]int {
	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// Problems returns the results whose status is not OK.
func Problems(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Status != OK {
			out = append(out, r)
		}
	}
	return out
}
