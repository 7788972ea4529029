package partition

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/piecemaker/pkg/errors"
	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

type table struct {
	Regions []puzzle.Region `json:"regions"`
}

// ReadRegions decodes a region table from r. The decoded regions are
// validated (non-empty, unique ids, positive dimensions) before they are
// returned, so a successfully read table is always a valid engine input.
// ReadRegions does not close r.
func ReadRegions(r io.Reader) ([]puzzle.Region, error) {
	var t table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode region table")
	}
	if len(t.Regions) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "region table is empty")
	}

	seen := make(map[string]struct{}, len(t.Regions))
	for _, reg := range t.Regions {
		if err := errors.ValidateRegionID(reg.ID); err != nil {
			return nil, err
		}
		if err := errors.ValidateDimensions(reg.ID, reg.Width, reg.Height); err != nil {
			return nil, err
		}
		if _, dup := seen[reg.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidRegion, "duplicate region id %q", reg.ID)
		}
		seen[reg.ID] = struct{}{}
	}
	return t.Regions, nil
}

// ImportRegions reads a region table from the JSON file at path.
func ImportRegions(path string) ([]puzzle.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "region table %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open region table %s", path)
	}
	defer f.Close()

	regions, err := ReadRegions(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read region table %s", path)
	}
	return regions, nil
}

// WriteRegions encodes a region table as indented JSON to w. The output can
// be re-read with [ReadRegions] for round-trip processing.
func WriteRegions(regions []puzzle.Region, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(table{Regions: regions}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode region table")
	}
	return nil
}

// ExportRegions writes a region table to the JSON file at path.
func ExportRegions(regions []puzzle.Region, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	defer f.Close()

	if err := WriteRegions(regions, f); err != nil {
		return err
	}
	return f.Close()
}

// MarshalRegions returns the canonical compact byte form of a region table,
// suitable as cache-key material: field order is fixed by the struct and no
// indentation varies, so identical tables yield identical bytes.
func MarshalRegions(regions []puzzle.Region) ([]byte, error) {
	data, err := json.Marshal(table{Regions: regions})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal region table")
	}
	return data, nil
}
