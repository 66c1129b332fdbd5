package sstable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
)

// serialize data to file
func Float64Serialize(m mat.Matrix, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if err := WriteFloat64(out, m); err != nil {
		out.Close()
		return fmt.Errorf("sstable: write %s: %w", fn, err)
	}
	return out.Close()
}

// WriteFloat64 writes the matrix shape as "rows,cols" on the first line
// followed by one "row,col,value" line per nonzero element.
func WriteFloat64(w io.Writer, m mat.Matrix) error {
	out := bufio.NewWriter(w)

	r, c := m.Dims()
	// write the matrix shape
	if _, err := fmt.Fprintf(out, "%d,%d\n", r, c); err != nil {
		return err
	}

	var val float64
	for ridx := 0; ridx < r; ridx += 1 {
		for cidx := 0; cidx < c; cidx += 1 {
			val = m.At(ridx, cidx)
			if val != 0 { // only write out nonzero value
				if _, err := fmt.Fprintf(out, "%d,%d,%s\n", ridx, cidx,
					strconv.FormatFloat(val, 'e', -1, 64)); err != nil {
					return err
				}
			}
		}
	}
	return out.Flush()
}

// deserialize data from file
func Float64Deserialize(fn string) (*mat.Dense, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ReadFloat64(file)
	if err != nil {
		return nil, fmt.Errorf("sstable: read %s: %w", fn, err)
	}
	return m, nil
}

// ReadFloat64 parses the WriteFloat64 format. Malformed element lines
// are logged and skipped, a bad shape line or an element outside the
// shape is an error.
func ReadFloat64(r io.Reader) (*mat.Dense, error) {
	lineIdx := 0
	var tmp *mat.Dense
	var row, col uint64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("model corrupted, shape not found: %s", txt)
			}
			var err error
			row, err = strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return nil, err
			}
			col, err = strconv.ParseUint(shape[1], 10, 32)
			if err != nil {
				return nil, err
			}
			if row == 0 || col == 0 {
				return nil, fmt.Errorf("model corrupted, bad shape: %s", txt)
			}
			tmp = mat.NewDense(int(row), int(col), nil)
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Warningf("data corrupted, row %d, data %s",
				lineIdx, txt)
			lineIdx += 1
			continue
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return nil, err
		}
		if ridx >= row || cidx >= col {
			return nil, fmt.Errorf("model corrupted, element [%d, %d] outside %dx%d",
				ridx, cidx, row, col)
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		tmp.Set(int(ridx), int(cidx), val)

		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("model corrupted, empty input")
	}

	return tmp, nil
}
