// Package cdr enriches a Store already populated from the verbose log
// with call detail records: which channels a phone number or caller-ID
// flowed through, read from the accompanying CDR CSV.
package cdr

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/driver"
	"github.com/mbonnet/astgraph/internal/logio"
	"github.com/mbonnet/astgraph/internal/logtext"
	"github.com/mbonnet/astgraph/internal/parseerr"
)

// windowSlop is added past the binary-searched CDR span on both sides,
// matching the original's generous 1,000,000-byte margin: CDR rows are
// not written in strict timestamp order across fields, so the exact
// window boundary can miss a row whose other columns belong in range.
const windowSlop = 1000000

// Enrich opens path (the CDR CSV), positions itself to the byte span
// roughly covering [fromWhen, toWhen] the same way the log window does,
// and for every well-formed row builds the phone/caller-ID -> channel
// associations store.AddPhoneChannel and Channel.CLIDName/CLIDNum
// surface. A row is well-formed if it has at least 16 fields; anything
// shorter is silently skipped, matching the source format's tolerance
// for truncated trailing rows.
func Enrich(store *callgraph.Store, path, fromWhen, toWhen string, progress driver.ProgressFunc) error {
	if path == "" {
		return nil
	}

	src, err := logio.OpenSource(path)
	if err != nil {
		return parseerr.New(parseerr.FileNotFound, "no such file: %s", path)
	}
	defer src.Close()

	fileSize := src.Size()
	startPos, startOK := logio.FindFilePosition(src, fileSize, fromWhen, logio.DirectionAfter, true)
	finishPos, finishOK := logio.FindFilePosition(src, fileSize, toWhen, logio.DirectionBefore, true)
	if !startOK || !finishOK {
		return nil
	}

	totalBytes := finishPos - startPos + 2*windowSlop

	readFrom := startPos - windowSlop
	if readFrom < 0 {
		readFrom = 0
	}
	readTo := finishPos + windowSlop
	if readTo > fileSize {
		readTo = fileSize
	}

	buf := make([]byte, readTo-readFrom)
	if _, err := src.ReadAt(buf, readFrom); err != nil && err != io.EOF {
		return err
	}

	phoneChanMap := make(map[string]map[string]struct{})
	type callerID struct{ name, num string }
	callerIDChanMap := make(map[string]callerID)

	rowNum := 0
	r := csv.NewReader(bytes.NewReader(buf))
	r.FieldsPerRecord = -1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rowNum++
		if progress != nil {
			progress("cdr", rowNum, int64(rowNum), totalBytes)
		}
		if len(row) < 16 {
			continue
		}

		src1 := row[1]
		dst := row[2]
		clid := []byte(row[4])
		chanName := row[5]
		dstChan := row[6]

		var clidName, clidNum string
		if idx := bytes.IndexByte(clid, '<'); idx >= 0 {
			name := bytes.TrimSpace(clid[:idx])
			if len(name) > 1 && name[0] == '"' {
				name = name[1 : len(name)-1]
			}
			clidName = string(name)
			num, _, ok := logtext.Delimited(clid, []byte("<"), []byte(">"), idx)
			if ok {
				clidNum = string(num)
			}
		} else {
			clidNum = string(clid)
		}

		c1 := phoneChanMap[chanName]
		if c1 == nil {
			c1 = make(map[string]struct{})
			phoneChanMap[chanName] = c1
		}
		c2 := phoneChanMap[dstChan]
		if c2 == nil {
			c2 = make(map[string]struct{})
			phoneChanMap[dstChan] = c2
		}
		callerIDChanMap[chanName] = callerID{clidName, clidNum}

		for _, m := range []map[string]struct{}{c1, c2} {
			m[src1] = struct{}{}
			m[dst] = struct{}{}
			if clidNum != "" {
				m[clidNum] = struct{}{}
			}
			if clidName != "" {
				m[clidName] = struct{}{}
			}
		}
	}

	for chanName, phones := range phoneChanMap {
		channel, ok := store.Channels[chanName]
		if !ok {
			continue
		}
		for phone := range phones {
			store.AddPhoneChannel(phone, channel)
		}
	}
	for chanName, cid := range callerIDChanMap {
		channel, ok := store.Channels[chanName]
		if !ok {
			continue
		}
		channel.CLIDName = strings.TrimSpace(cid.name)
		channel.CLIDNum = cid.num
	}

	return nil
}
