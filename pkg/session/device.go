package session

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Device describes the (possibly synthetic) handset the client presents
// to the server. String fields longer than the protocol's fixed-width
// expectations are truncated by the encoders, not here.
type Device struct {
	IMEI        string
	AndroidID   string
	MAC         string
	Model       string
	Brand       string
	Product     string
	Bootloader  string
	ProcVersion string
	Fingerprint string
	BootID      string
	Baseband    string
	Sim         string
	OSType      string
	OSVersion   string
	APN         string
	WifiBSSID   string
	WifiSSID    string
	QImei16     string

	// GUID is the 16-byte globally-unique device id,
	// md5(android_id || mac).
	GUID []byte
}

// NewDevice derives a complete device profile from a seed string,
// usually the account id. The same seed always regenerates the same
// device, so a stored profile can be rebuilt without persisting every
// field.
func NewDevice(seed string) *Device {
	hash := md5.Sum([]byte(seed))
	hex1 := hex.EncodeToString(hash[:])
	hash2 := md5.Sum([]byte(hex1))
	hex2 := hex.EncodeToString(hash2[:])

	androidID := hex1[8:24]
	mac := fmt.Sprintf("02:00:%02x:%02x:%02x:%02x", hash[0], hash[1], hash[2], hash[3])
	guid := md5.Sum([]byte(androidID + mac))

	d := &Device{
		IMEI:        imeiFromHash(hash),
		AndroidID:   androidID,
		MAC:         mac,
		Model:       "MIX 2S",
		Brand:       "Xiaomi",
		Product:     "polaris",
		Bootloader:  "unknown",
		ProcVersion: fmt.Sprintf("Linux version 4.9.337 (android-build@%s)", hex1[:8]),
		Fingerprint: fmt.Sprintf("Xiaomi/polaris/polaris:10/QKQ1.%s/%s:user/release-keys", hex2[:6], hex2[6:13]),
		BootID:      fmt.Sprintf("%s-%s-%s-%s-%s", hex2[:8], hex2[8:12], hex2[12:16], hex2[16:20], hex2[20:32]),
		Baseband:    "4.3.c5-00069-SM6150_GEN_PACK-1",
		Sim:         "T-Mobile",
		OSType:      "android",
		OSVersion:   "10",
		APN:         "wifi",
		WifiBSSID:   "02:00:00:00:00:00",
		WifiSSID:    "<unknown ssid>",
		GUID:        guid[:],
	}
	return d
}

// imeiFromHash builds a 15-digit IMEI from hash material: a fixed "86"
// TAC prefix, 12 derived digits and a Luhn check digit.
func imeiFromHash(hash [16]byte) string {
	digits := make([]byte, 0, 15)
	digits = append(digits, '8', '6')
	for i := 0; i < 12; i++ {
		digits = append(digits, '0'+hash[i]%10)
	}
	return string(append(digits, luhnDigit(digits)))
}

// luhnDigit computes the check digit for a 14-digit IMEI body. Moving
// left from the check position, every second digit is doubled.
func luhnDigit(digits []byte) byte {
	sum := 0
	for i, c := range digits {
		d := int(c - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}
