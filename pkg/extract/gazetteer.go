package extract

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/entityfusion/fusion/pkg/ac"
	"github.com/entityfusion/fusion/pkg/document"
)

// gazetteerFile names the line-oriented reference file for each gazetteer
// set within a gazetteer directory (§6's "canonical-entity reference files
// for known governments / companies / universities").
var gazetteerFile = map[string]string{
	OrgGazetteerSet: "orgs.txt",
	LocGazetteerSet: "locations.txt",
	GPEGazetteerSet: "gpe.txt",
	GovGazetteerSet: "governments.txt",
}

var gazetteerKind = map[string]document.EntityKind{
	OrgGazetteerSet: document.KindOrg,
	LocGazetteerSet: document.KindLoc,
	GPEGazetteerSet: document.KindGPE,
	GovGazetteerSet: document.KindOrg,
}

// LoadGazetteers builds the AC automaton Config.AC expects from the
// line-oriented reference files under dir, one file per gazetteer set.
// A missing file yields an empty set rather than an error, since not every
// deployment carries every reference list.
func LoadGazetteers(dir string) (*ac.Automaton, error) {
	var specs []ac.SetSpec
	for _, setName := range gazetteerSets {
		var entries []ac.Entry
		var err error
		if dir != "" {
			entries, err = readGazetteerFile(filepath.Join(dir, gazetteerFile[setName]), gazetteerKind[setName])
		}
		if err != nil {
			return nil, fmt.Errorf("gazetteer: load %s: %w", setName, err)
		}
		specs = append(specs, ac.SetSpec{
			Name:      setName,
			Entries:   entries,
			CaseFold:  false,
			Prefilter: true,
		})
	}
	return ac.Build(specs)
}

// readGazetteerFile parses one entry per line, '#'-prefixed comments
// ignored, optional pipe-delimited fields (name|alias1|alias2|...) each
// becoming a distinct entry sharing the same EntityKind.
func readGazetteerFile(path string, kind document.EntityKind) ([]ac.Entry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	var entries []ac.Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Split(line, "|") {
			name := strings.TrimSpace(field)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			entries = append(entries, ac.Entry{Pattern: name, Value: kind})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
