// Package config loads client profiles. A profile file is optional:
// every device field can be derived from the account seed, and the app
// profile defaults to the Android phone build. File values override the
// derived ones field by field.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/FurryKamenomi/icqq-dev/pkg/session"
)

// Profile bundles the loaded device and application profiles.
type Profile struct {
	Device *session.Device
	App    *session.App
}

// Load reads a YAML profile from path. A missing file is not an error;
// the profile then consists entirely of derived defaults for the given
// seed. Environment variables prefixed ICQQ_ override file values.
func Load(path, seed string) (*Profile, error) {
	v := viper.New()
	v.SetEnvPrefix("icqq")
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading profile %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading profile %s: %w", path, err)
		}
	}

	device := session.NewDevice(seed)
	overrideString(v, "device.imei", &device.IMEI)
	overrideString(v, "device.android_id", &device.AndroidID)
	overrideString(v, "device.mac", &device.MAC)
	overrideString(v, "device.model", &device.Model)
	overrideString(v, "device.brand", &device.Brand)
	overrideString(v, "device.os_type", &device.OSType)
	overrideString(v, "device.os_version", &device.OSVersion)
	overrideString(v, "device.sim", &device.Sim)
	overrideString(v, "device.apn", &device.APN)
	overrideString(v, "device.wifi_bssid", &device.WifiBSSID)
	overrideString(v, "device.wifi_ssid", &device.WifiSSID)
	overrideString(v, "device.qimei16", &device.QImei16)

	app := session.AndroidPhone()
	overrideString(v, "app.id", &app.ID)
	overrideString(v, "app.name", &app.Name)
	overrideString(v, "app.version", &app.Version)
	overrideString(v, "app.sdk_version", &app.SDKVer)
	overrideUint32(v, "app.appid", &app.AppID)
	overrideUint32(v, "app.subid", &app.SubID)
	overrideUint32(v, "app.sso_version", &app.SSOVer)
	overrideUint32(v, "app.main_sig_map", &app.MainSigMap)
	overrideUint32(v, "app.sub_sig_map", &app.SubSigMap)
	overrideUint32(v, "app.misc_bitmap", &app.MiscBitmap)

	return &Profile{Device: device, App: app}, nil
}

func overrideString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func overrideUint32(v *viper.Viper, key string, dst *uint32) {
	if v.IsSet(key) {
		*dst = v.GetUint32(key)
	}
}
