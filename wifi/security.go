package wifi

import "strings"

// Access point security flags, see NM80211ApSecurityFlags.
const (
	flagKeyMgmtPSK   uint32 = 0x100
	flagKeyMgmt8021X uint32 = 0x200
	flagKeyMgmtSAE   uint32 = 0x400
)

// ClassifySecurity maps the WPA and RSN flag masks of an access point to a
// label and whether the network should be treated as insecure.
func ClassifySecurity(wpaFlags, rsnFlags uint32) (label string, weak bool) {
	if wpaFlags == 0 && rsnFlags == 0 {
		return "Open", true
	}

	var modes []string
	switch {
	case rsnFlags&flagKeyMgmtSAE != 0:
		modes = append(modes, "WPA3")
	case rsnFlags&flagKeyMgmtPSK != 0:
		modes = append(modes, "WPA2")
	case rsnFlags&flagKeyMgmt8021X != 0:
		modes = append(modes, "WPA2-Ent")
	case rsnFlags != 0:
		modes = append(modes, "RSN")
	}
	if len(modes) == 0 && wpaFlags != 0 {
		modes = append(modes, "WPA")
	}

	if len(modes) == 0 {
		return "WEP/Open", true
	}
	return strings.Join(modes, " "), false
}
