package sipmsg

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
)

// addHeader parses one header-section line into msg, exactly as the
// reference parser's add_header: the first line is either a status line
// ("SIP/2.0 200 OK") or a request line ("INVITE sip:... SIP/2.0"), every
// following line is scanned for the handful of headers the engine cares
// about (From, To, Call-ID, Via, CSeq); everything else is kept verbatim
// in Header but not further parsed.
func addHeader(msg *callgraph.SipMessage, line []byte) {
	if len(msg.Header) == 0 {
		if bytes.HasPrefix(line, []byte("SIP/2.0")) {
			msg.Status = line[8:]
		} else if pos := bytes.IndexByte(line, ' '); pos >= 0 {
			msg.Request = line[:pos]
			addr, _, ok := logtext.Delimited(line, []byte("sip:"), []byte(" "), pos)
			if ok {
				if at := bytes.IndexByte(addr, '@'); at > 0 {
					addr = addr[at+1:]
				}
				if semi := bytes.IndexByte(addr, ';'); semi > 0 {
					addr = addr[:semi]
				}
				msg.RequestAddr = addr
			}
		}
	} else {
		switch {
		case bytes.HasPrefix(line, []byte("From:")):
			msg.FromName, msg.FromNum, msg.FromAddr = parseFromTo(line, 6)
		case bytes.HasPrefix(line, []byte("To:")):
			msg.ToName, msg.ToNum, msg.ToAddr = parseFromTo(line, 4)
		case bytes.HasPrefix(line, []byte("Call-ID:")):
			msg.CallID = string(line[9:])
		case bytes.HasPrefix(line, []byte("Via:")):
			via, _, ok := logtext.Delimited(line, []byte(" "), []byte(";"), 14)
			if ok {
				msg.ViaAddr = via
			}
		case bytes.HasPrefix(line, []byte("CSeq:")):
			msg.CSeq = line[6:]
		}
	}
	msg.Header = append(msg.Header, line)
}

// parseFromTo parses a From/To header value starting at start, handling
// the three forms SIP allows: a bare "<sip:...>" URI, a quoted display
// name followed by the URI, or an unquoted display name followed by it.
func parseFromTo(line []byte, start int) (name, num, addr []byte) {
	if start >= len(line) {
		return nil, nil, nil
	}
	switch line[start] {
	case '<':
		num, _, _ = logtext.Delimited(line, []byte("<sip:"), []byte(">"), start)
	case '"':
		var pos int
		var ok bool
		name, pos, ok = logtext.Delimited(line, []byte("\""), []byte("\""), start)
		if !ok {
			pos = start
		}
		num, _, _ = logtext.Delimited(line, []byte("<sip:"), []byte(">"), pos)
	default:
		var pos int
		var ok bool
		num, pos, ok = logtext.Delimited(line, []byte("<sip:"), []byte(">"), start)
		if !ok {
			pos = start
		}
		name, _, _ = logtext.DelimitedIn(line, []byte(" "), []byte(" "), start-1, pos)
	}

	if len(num) > 0 {
		if semi := bytes.IndexByte(num, ';'); semi > 0 {
			num = num[:semi]
		}
		if at := bytes.IndexByte(num, '@'); at > 0 {
			orig := num
			num = orig[:at]
			addr = orig[at+1:]
			if !bytes.ContainsRune(addr, ':') {
				addr = append(append([]byte{}, addr...), []byte(":5060")...)
			}
		}
	}
	return name, num, addr
}
