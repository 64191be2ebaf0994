package tlv

import (
	"crypto/md5"
	"fmt"
	"strconv"

	"github.com/FurryKamenomi/icqq-dev/pkg/binary"
	"github.com/FurryKamenomi/icqq-dev/pkg/sign"
)

// supportedTags lists every tag the registry knows, in ascending order.
var supportedTags = []uint16{
	0x01, 0x08, 0x16, 0x18,
	0x100, 0x104, 0x106, 0x107, 0x108, 0x109, 0x10A,
	0x116, 0x124, 0x128, 0x141, 0x142, 0x143, 0x144, 0x145, 0x147,
	0x154, 0x16E, 0x174, 0x177, 0x17A, 0x17C, 0x187, 0x188,
	0x191, 0x193, 0x202,
	0x400, 0x401,
	0x511, 0x516, 0x521, 0x525, 0x52D, 0x544, 0x545, 0x548,
}

// Tags returns the registered tag ids in ascending order. The slice is
// a copy; callers may keep it.
func Tags() []uint16 {
	out := make([]uint16, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// payload dispatches to the tag's encoder. The switch is exhaustive
// over supportedTags; adding a tag means adding a case here and an
// entry there.
func (e *Encoder) payload(tag uint16, arg any) ([]byte, error) {
	switch tag {
	case 0x01:
		return e.t01()
	case 0x08:
		return e.t08()
	case 0x16:
		return e.t16()
	case 0x18:
		return e.t18()
	case 0x100:
		return e.t100()
	case 0x104:
		return e.Sig.T104, nil
	case 0x106:
		a, ok := arg.(T106Args)
		if !ok {
			return nil, fmt.Errorf("%w: want T106Args", ErrBadArgument)
		}
		return e.t106(a)
	case 0x107:
		return e.t107()
	case 0x108:
		return e.t108()
	case 0x109:
		return md5String(e.Device.IMEI), nil
	case 0x10A:
		return e.Sig.TGT, nil
	case 0x116:
		return e.t116()
	case 0x124:
		return e.t124()
	case 0x128:
		return e.t128()
	case 0x141:
		return e.t141()
	case 0x142:
		return e.t142()
	case 0x143:
		a, ok := arg.(T143Args)
		if !ok {
			return nil, fmt.Errorf("%w: want T143Args", ErrBadArgument)
		}
		return a.Ticket, nil
	case 0x144:
		return e.t144()
	case 0x145:
		return e.Device.GUID, nil
	case 0x147:
		return e.t147()
	case 0x154:
		// Peek: current sequence + 1. Advancing the counter is the
		// driver's responsibility after the packet is sent.
		return binary.NewWriter().WriteU32(e.Sig.Seq + 1).Bytes()
	case 0x16E:
		return []byte(e.Device.Model), nil
	case 0x174:
		return e.Sig.T174, nil
	case 0x177:
		return e.t177()
	case 0x17A:
		return binary.NewWriter().WriteU32(9).Bytes()
	case 0x17C:
		a, ok := arg.(T17CArgs)
		if !ok {
			return nil, fmt.Errorf("%w: want T17CArgs", ErrBadArgument)
		}
		return binary.NewWriter().WriteTlv([]byte(a.Code)).Bytes()
	case 0x187:
		return md5String(e.Device.MAC), nil
	case 0x188:
		return md5String(e.Device.AndroidID), nil
	case 0x191:
		return []byte{0x82}, nil
	case 0x193:
		a, ok := arg.(T193Args)
		if !ok {
			return nil, fmt.Errorf("%w: want T193Args", ErrBadArgument)
		}
		return []byte(a.Ticket), nil
	case 0x202:
		return e.t202()
	case 0x400:
		return e.t400()
	case 0x401:
		return e.t401()
	case 0x511:
		return e.t511()
	case 0x516:
		return binary.NewWriter().WriteU32(0).Bytes()
	case 0x521:
		return binary.NewWriter().WriteU32(0).WriteU16(0).Bytes()
	case 0x525:
		return e.t525()
	case 0x52D:
		if e.DeviceInfo == nil {
			return nil, fmt.Errorf("%w: device-info codec", ErrNotConfigured)
		}
		return e.DeviceInfo(e.Device)
	case 0x544:
		a, ok := arg.(T544Args)
		if !ok {
			return nil, fmt.Errorf("%w: want T544Args", ErrBadArgument)
		}
		return e.t544(a)
	case 0x545:
		if e.Device.QImei16 != "" {
			return []byte(e.Device.QImei16), nil
		}
		return []byte(e.Device.IMEI), nil
	case 0x548:
		return e.t548()
	default:
		return nil, ErrUnknownTag
	}
}

func (e *Encoder) t01() ([]byte, error) {
	nonce, err := e.randBytes(4)
	if err != nil {
		return nil, err
	}
	return binary.NewWriter().
		WriteU16(1). // ip version
		WriteBytes(nonce).
		WriteU32(e.Sig.Uin).
		WriteU32(e.now()).
		WriteBytes(make([]byte, 4)). // 0.0.0.0
		WriteU16(0).
		Bytes()
}

func (e *Encoder) t08() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(0).
		WriteU32(2052). // locale id
		WriteU16(0).
		Bytes()
}

func (e *Encoder) t16() ([]byte, error) {
	return binary.NewWriter().
		WriteU32(e.App.SSOVer).
		WriteU32(e.App.AppID).
		WriteU32(e.App.SubID).
		WriteBytes(e.Device.GUID).
		WriteTlv([]byte(e.App.ID)).
		WriteTlv([]byte(e.App.Version)).
		WriteTlv(e.App.Sign).
		Bytes()
}

func (e *Encoder) t18() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(1). // ping version
		WriteU32(1536).
		WriteU32(e.App.AppID).
		WriteU32(0). // app client version
		WriteU32(e.Sig.Uin).
		WriteU16(0).
		WriteU16(0).
		Bytes()
}

func (e *Encoder) t100() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(1). // db buf version
		WriteU32(e.App.SSOVer).
		WriteU32(e.App.AppID).
		WriteU32(e.App.SubID).
		WriteU32(0). // app client version
		WriteU32(e.App.MainSigMap).
		Bytes()
}

// t106 is the encrypted A1 credential block. The body carries the
// password digest and the tgtgt key; the whole body is sealed with a
// key derived from the password digest and the account id.
func (e *Encoder) t106(a T106Args) ([]byte, error) {
	nonce, err := e.randBytes(4)
	if err != nil {
		return nil, err
	}
	body, err := binary.NewWriter().
		WriteU16(4). // tgtgt version
		WriteBytes(nonce).
		WriteU32(e.App.SSOVer).
		WriteU32(e.App.AppID).
		WriteU32(0). // app client version
		WriteU64(uint64(e.Sig.Uin)).
		WriteU32(e.now()).
		WriteU32(0). // dummy ip
		WriteU8(1).  // save password
		WriteBytes(a.PasswordMD5[:]).
		WriteBytes(e.Sig.Tgtgt).
		WriteU32(0).
		WriteU8(1). // guid available
		WriteBytes(e.Device.GUID).
		WriteU32(e.App.SubID).
		WriteU32(1). // login type: password
		WriteTlv([]byte(strconv.FormatUint(uint64(e.Sig.Uin), 10))).
		WriteU16(0).
		Bytes()
	if err != nil {
		return nil, err
	}

	key := binary.NewWriter().
		WriteBytes(a.PasswordMD5[:]).
		WriteU32(0).
		WriteU32(e.Sig.Uin)
	keyBytes, err := key.Bytes()
	if err != nil {
		return nil, err
	}
	sum := md5.Sum(keyBytes)
	return e.seal(body, sum[:])
}

func (e *Encoder) t107() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(1). // pic type
		WriteU8(0).
		WriteU16(13).
		WriteU8(1).
		Bytes()
}

// t108 is the session cookie. Before the server issues one, the client
// presents a device-derived fallback.
func (e *Encoder) t108() ([]byte, error) {
	if len(e.Sig.Ksid) > 0 {
		return e.Sig.Ksid, nil
	}
	return []byte("|" + e.Device.IMEI + "|" + e.App.Name), nil
}

func (e *Encoder) t116() ([]byte, error) {
	return binary.NewWriter().
		WriteU8(0).
		WriteU32(e.App.MiscBitmap).
		WriteU32(e.App.SubSigMap).
		WriteU8(1). // sub appid count
		WriteU32(1600000226).
		Bytes()
}

func (e *Encoder) t124() ([]byte, error) {
	return binary.NewWriter().
		WriteTlvLimited([]byte(e.Device.OSType), 16).
		WriteTlvLimited([]byte(e.Device.OSVersion), 16).
		WriteU16(2). // network type
		WriteTlvLimited([]byte(e.Device.Sim), 16).
		WriteU16(0).
		WriteTlvLimited([]byte(e.Device.APN), 16).
		Bytes()
}

func (e *Encoder) t128() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(0).
		WriteU8(0).          // guid new
		WriteU8(1).          // guid available
		WriteU8(0).          // guid changed
		WriteU32(0x01000000). // guid flag
		WriteTlvLimited([]byte(e.Device.Model), 32).
		WriteTlvLimited(e.Device.GUID, 16).
		WriteTlvLimited([]byte(e.Device.Brand), 16).
		Bytes()
}

func (e *Encoder) t141() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(1). // version
		WriteTlv([]byte(e.Device.Sim)).
		WriteU16(2). // network type
		WriteTlv([]byte(e.Device.APN)).
		Bytes()
}

func (e *Encoder) t142() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(0).
		WriteTlvLimited([]byte(e.App.ID), 32).
		Bytes()
}

// t144 seals a nested TLV stream of device descriptors with the tgtgt
// key: a block count, then tags 0x109, 0x52D, 0x124, 0x128 and 0x16E
// packed back to back.
func (e *Encoder) t144() ([]byte, error) {
	inner := binary.NewWriter().WriteU16(5)
	for _, sub := range []uint16{0x109, 0x52D, 0x124, 0x128, 0x16E} {
		block, err := e.Pack(sub, nil)
		if err != nil {
			return nil, err
		}
		inner.WriteBytes(block)
	}
	body, err := inner.Bytes()
	if err != nil {
		return nil, err
	}
	return e.seal(body, e.Sig.Tgtgt)
}

func (e *Encoder) t147() ([]byte, error) {
	return binary.NewWriter().
		WriteU32(e.App.AppID).
		WriteTlv([]byte(e.App.Version)).
		WriteTlv(e.App.Sign).
		Bytes()
}

func (e *Encoder) t177() ([]byte, error) {
	return binary.NewWriter().
		WriteU8(1).
		WriteU32(e.App.BuildTime).
		WriteTlv([]byte(e.App.SDKVer)).
		Bytes()
}

func (e *Encoder) t202() ([]byte, error) {
	return binary.NewWriter().
		WriteTlvLimited([]byte(e.Device.WifiBSSID), 16).
		WriteTlvLimited([]byte(e.Device.WifiSSID), 32).
		Bytes()
}

// t400 seals a short identity block with the tgtgt key.
func (e *Encoder) t400() ([]byte, error) {
	nonce, err := e.randBytes(16)
	if err != nil {
		return nil, err
	}
	body, err := binary.NewWriter().
		WriteU16(1).
		WriteU64(uint64(e.Sig.Uin)).
		WriteBytes(e.Device.GUID).
		WriteBytes(nonce).
		WriteU32(12).
		WriteU32(16).
		WriteU32(e.now()).
		Bytes()
	if err != nil {
		return nil, err
	}
	return e.seal(body, e.Sig.Tgtgt)
}

func (e *Encoder) t401() ([]byte, error) {
	h := md5.New()
	h.Write(e.Device.GUID)
	h.Write(e.Sig.Dpwd)
	h.Write(e.Sig.T402)
	return h.Sum(nil), nil
}

// t511 serializes the enabled service-domain set: a count, then one
// marker byte and a length-prefixed name per domain.
func (e *Encoder) t511() ([]byte, error) {
	w := binary.NewWriter().WriteU16(uint16(len(loginDomains)))
	for _, domain := range loginDomains {
		w.WriteU8(0x01).WriteTlv([]byte(domain))
	}
	return w.Bytes()
}

func (e *Encoder) t525() ([]byte, error) {
	return binary.NewWriter().
		WriteU16(1). // nested block count
		WriteU16(0x536).
		WriteU16(2).
		WriteBytes([]byte{0x01, 0x00}).
		Bytes()
}

// t544 delegates to the external signer. Version -1 means the caller
// already holds a precomputed signature, emitted verbatim with no salt
// construction and no signer call.
func (e *Encoder) t544(a T544Args) ([]byte, error) {
	if a.Version == -1 {
		return a.Signature, nil
	}
	if e.Signer == nil {
		return nil, fmt.Errorf("%w: signer", ErrNotConfigured)
	}
	salt, err := sign.Salt(a.Version, e.Sig.Uin, e.Device.GUID, e.App.SDKVer, a.SubCmd)
	if err != nil {
		return nil, err
	}
	return e.Signer.Sign(e.nowMS(), salt)
}

// t548 builds a fresh proof-of-work puzzle and emits the solver's proof
// verbatim.
func (e *Encoder) t548() ([]byte, error) {
	if e.Solver == nil {
		return nil, fmt.Errorf("%w: proof-of-work solver", ErrNotConfigured)
	}
	puzzle, err := sign.NewPuzzle(e.rng())
	if err != nil {
		return nil, err
	}
	challenge, err := puzzle.Challenge()
	if err != nil {
		return nil, err
	}
	return e.Solver.Solve(challenge)
}
