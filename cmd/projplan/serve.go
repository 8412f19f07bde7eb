package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/lumenrig/projplan/internal/util"
)

// reply is one output line.
type reply struct {
	Command string `json:"command"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// serve runs every command line of in through d and writes one JSON reply
// per command to out. Blank lines and lines starting with # are skipped. A
// failing command is reported and does not stop the loop. It returns the
// number of failed commands.
func serve(ctx context.Context, in io.Reader, out io.Writer, d *dispatcher.Dispatcher) (int, error) {
	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	failed := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := util.SplitLine(line)
		e := dispatcher.Event{
			Command:   strings.ToUpper(fields[0]),
			Args:      fields[1:],
			Timestamp: time.Now(),
		}

		r := reply{Command: e.Command}
		result, err := d.Dispatch(e)
		if err != nil {
			failed++
			r.Error = err.Error()
		} else {
			r.Result = result
		}
		if err := enc.Encode(r); err != nil {
			return failed, err
		}
	}
	return failed, scanner.Err()
}
