package trace

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
	"github.com/yigitbektasgursoy/cache-simulator/internal/errs"
	"github.com/yigitbektasgursoy/cache-simulator/internal/obslog"
)

// FileProducer replays a trace file of "<hexaddr> <R|W>" lines. The
// whole file is parsed eagerly at construction so Clone can hand out
// independent cursors over the same in-memory slice.
type FileProducer struct {
	path     string
	accesses []access.MemoryAccess
	pos      int
}

// NewFileProducer opens and fully parses path. Blank lines are
// skipped; any other malformed line raises a *errs.TraceError naming
// the offending line number.
func NewFileProducer(path string) (*FileProducer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.WrapTraceError(path, 0, err)
	}
	defer f.Close()

	var accesses []access.MemoryAccess
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errs.NewTraceError(path, lineNo, "expected \"<hexaddr> <R|W>\"")
		}
		addrText := strings.TrimPrefix(strings.TrimPrefix(fields[0], "0x"), "0X")
		addr, err := strconv.ParseUint(addrText, 16, 64)
		if err != nil {
			obslog.L.WithField("file", path).WithField("line", lineNo).Warn("unparsable trace address")
			return nil, errs.WrapTraceError(path, lineNo, err)
		}
		kind, ok := access.ParseKind(fields[1])
		if !ok {
			return nil, errs.NewTraceError(path, lineNo, "unknown access kind "+fields[1])
		}
		accesses = append(accesses, access.MemoryAccess{Address: addr, Kind: kind})
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.WrapTraceError(path, lineNo, err)
	}

	return &FileProducer{path: path, accesses: accesses}, nil
}

// Next implements Producer.
func (p *FileProducer) Next() (access.MemoryAccess, bool) {
	if p.pos >= len(p.accesses) {
		return access.MemoryAccess{}, false
	}
	a := p.accesses[p.pos]
	p.pos++
	return a, true
}

// Reset implements Producer.
func (p *FileProducer) Reset() { p.pos = 0 }

// Clone implements Producer.
func (p *FileProducer) Clone() (Producer, error) {
	return &FileProducer{path: p.path, accesses: p.accesses}, nil
}
