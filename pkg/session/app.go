package session

// App is the application profile: identity and capability constants of
// the client build the codec impersonates. All values are fixed by the
// impersonated release, not negotiated.
type App struct {
	// ID is the package name.
	ID string

	// Name is the protocol-level client name, also used as the suffix
	// of the session-cookie fallback.
	Name string

	Version string

	// Sign is the release signature digest.
	Sign []byte

	// BuildTime is the release build timestamp, Unix seconds.
	BuildTime uint32

	// SDKVer feeds the signer salt and tag 0x177.
	SDKVer string

	AppID  uint32
	SubID  uint32
	SSOVer uint32

	// Signature-map bitmasks declaring which tickets the client wants.
	MainSigMap uint32
	SubSigMap  uint32
	MiscBitmap uint32
}

// AndroidPhone returns the default Android phone profile.
func AndroidPhone() *App {
	return &App{
		ID:      "com.tencent.mobileqq",
		Name:    "A8.9.63.11390",
		Version: "8.9.63.11390",
		Sign: []byte{
			0xA6, 0xB7, 0x45, 0xBF, 0x24, 0xA2, 0xC2, 0x77,
			0x52, 0x77, 0x16, 0xF6, 0xF3, 0x6E, 0xB6, 0x8D,
		},
		BuildTime:  1685069178,
		SDKVer:     "6.0.0.2546",
		AppID:      16,
		SubID:      537164840,
		SSOVer:     20,
		MainSigMap: 16724722,
		SubSigMap:  0x10400,
		MiscBitmap: 150470524,
	}
}
