package logtext

import "bytes"

// DevicePhone trims a device spec such as "SIP/440" down to the part
// after the last '/'. Device specs with no '/' are returned unchanged.
func DevicePhone(device []byte) []byte {
	idx := bytes.LastIndexByte(device, '/')
	if idx > 0 {
		return device[idx+1:]
	}
	return device
}

// ChannelPhone trims a channel name such as "SIP/441-0015bc3d" down to the
// extension part between the last '/' and the following '-', e.g. "441".
// A channel name with no '-' after the slash keeps everything after it.
func ChannelPhone(channel []byte) []byte {
	idx := bytes.LastIndexByte(channel, '/')
	if idx > 0 {
		if idx2 := bytes.IndexByte(channel[idx:], '-'); idx2 > 0 {
			return channel[idx+1 : idx+idx2]
		}
		return channel[idx+1:]
	}
	return channel
}
