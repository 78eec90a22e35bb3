// Copyright © NGRSoftlab 2020-2025

package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ngrsoftlab/goscp"
)

// Kind identifies which of the four control records a line decoded to.
type Kind byte

const (
	// KindUnknown marks a line whose leading byte isn't one of C/D/E/T.
	// The caller's outer loop treats this as a no-op rather than a
	// protocol failure: stray bytes from the peer are tolerated, not
	// fatal.
	KindUnknown Kind = 0
	KindFile    Kind = 'C'
	KindDir     Kind = 'D'
	KindEnd     Kind = 'E'
	KindTime    Kind = 'T'
)

// FileHeader is a decoded `C<mode> <size> <name>` record.
type FileHeader struct {
	Mode uint32
	Size int64
	Name string
}

// DirHeader is a decoded `D<mode> 0 <name>` record.
type DirHeader struct {
	Mode uint32
	Name string
}

// TimeHeader is a decoded `T<mtime> 0 <atime> 0` record.
type TimeHeader struct {
	ModTime    int64
	AccessTime int64
}

// ParseHeader dispatches line (with its trailing newline already stripped)
// by its leading byte. It returns exactly one of the three pointers set,
// or all three nil for kind == KindEnd or an unrecognized leading byte
// (kind == KindUnknown).
func ParseHeader(line string) (kind Kind, file *FileHeader, dir *DirHeader, tm *TimeHeader, err error) {
	if line == "" {
		return 0, nil, nil, nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "empty header line")
	}
	switch line[0] {
	case byte(KindFile):
		f, perr := parseFileOrDir(line[1:])
		if perr != nil {
			return 0, nil, nil, nil, perr
		}
		return KindFile, &FileHeader{Mode: f.Mode, Size: f.Size, Name: f.Name}, nil, nil, nil
	case byte(KindDir):
		f, perr := parseFileOrDir(line[1:])
		if perr != nil {
			return 0, nil, nil, nil, perr
		}
		if f.Size != 0 {
			return 0, nil, nil, nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "directory record size must be 0, got %d", f.Size)
		}
		return KindDir, nil, &DirHeader{Mode: f.Mode, Name: f.Name}, nil, nil
	case byte(KindEnd):
		return KindEnd, nil, nil, nil, nil
	case byte(KindTime):
		t, perr := parseTime(line[1:])
		if perr != nil {
			return 0, nil, nil, nil, perr
		}
		return KindTime, nil, nil, t, nil
	default:
		// Unrecognized discriminators are tolerated, not fatal: the
		// caller's outer loop skips them and keeps reading.
		return KindUnknown, nil, nil, nil, nil
	}
}

// rawFileOrDir holds the three whitespace-separated fields common to C and
// D records before the caller decides which header type to build.
type rawFileOrDir struct {
	Mode uint32
	Size int64
	Name string
}

func parseFileOrDir(rest string) (rawFileOrDir, error) {
	fields := strings.SplitN(rest, " ", 3)
	if len(fields) != 3 {
		return rawFileOrDir{}, goscp.NewError(goscp.CodeMalformedHeader, nil, "expected 3 fields, got %d", len(fields))
	}
	mode, err := strconv.ParseUint(fields[0], 8, 32)
	if err != nil {
		return rawFileOrDir{}, goscp.NewError(goscp.CodeMalformedHeader, err, "bad mode field %q", fields[0])
	}
	size, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return rawFileOrDir{}, goscp.NewError(goscp.CodeMalformedHeader, err, "bad size field %q", fields[1])
	}
	if size < 0 {
		logrus.WithField("scp", "negative-size").Warnf("tolerating negative size field %q for %q", fields[1], fields[2])
	}
	if strings.Contains(fields[2], "/") {
		return rawFileOrDir{}, goscp.NewError(goscp.CodeMalformedHeader, nil, "name field contains a path separator: %q", fields[2])
	}
	return rawFileOrDir{Mode: uint32(mode), Size: size, Name: fields[2]}, nil
}

func parseTime(rest string) (*TimeHeader, error) {
	fields := strings.Split(rest, " ")
	if len(fields) != 4 {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "expected 4 fields, got %d", len(fields))
	}
	mtime, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, err, "bad mtime field %q", fields[0])
	}
	atime, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, err, "bad atime field %q", fields[2])
	}
	return &TimeHeader{ModTime: mtime, AccessTime: atime}, nil
}

// FormatFile renders a C record. mode must already be folded to the
// 9-bit rwx/ugo range (see attrs.ToOctal).
func FormatFile(mode uint32, size int64, name string) string {
	return fmt.Sprintf("C%04o %d %s", mode, size, name)
}

// FormatDir renders a D record. Size is always 0 by convention.
func FormatDir(mode uint32, name string) string {
	return fmt.Sprintf("D%04o 0 %s", mode, name)
}

// FormatEnd renders the directory-pop record.
func FormatEnd() string {
	return "E"
}

// FormatTime renders a T record. The microsecond fields are always 0.
func FormatTime(mtime, atime int64) string {
	return fmt.Sprintf("T%d 0 %d 0", mtime, atime)
}
