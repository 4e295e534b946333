package zip4go

import "github.com/Ran-Mewo/zip4go/internal/ffi"

// CompressionLevel controls the speed/ratio trade-off when writing entries.
type CompressionLevel int32

const (
	CompressionLevelNone    = CompressionLevel(ffi.CompressionLevelNone)
	CompressionLevelFastest = CompressionLevel(ffi.CompressionLevelFastest)
	CompressionLevelNormal  = CompressionLevel(ffi.CompressionLevelNormal)
	CompressionLevelMaximum = CompressionLevel(ffi.CompressionLevelMaximum)
)

func (l CompressionLevel) String() string {
	switch l {
	case CompressionLevelNone:
		return "none"
	case CompressionLevelFastest:
		return "fastest"
	case CompressionLevelNormal:
		return "normal"
	case CompressionLevelMaximum:
		return "maximum"
	default:
		return "unknown"
	}
}

// CompressionMethod is the ZIP method an entry is stored with.
type CompressionMethod int32

const (
	Store   = CompressionMethod(ffi.CompressionStore)
	Deflate = CompressionMethod(ffi.CompressionDeflate)
)

func (m CompressionMethod) String() string {
	switch m {
	case Store:
		return "store"
	case Deflate:
		return "deflate"
	default:
		return "unknown"
	}
}

// EncryptionMethod is the encryption scheme applied to an entry.
type EncryptionMethod int32

const (
	EncryptionNone     = EncryptionMethod(ffi.EncryptionNone)
	EncryptionStandard = EncryptionMethod(ffi.EncryptionStandard)
	EncryptionAES128   = EncryptionMethod(ffi.EncryptionAES128)
	EncryptionAES256   = EncryptionMethod(ffi.EncryptionAES256)
)

func (m EncryptionMethod) String() string {
	switch m {
	case EncryptionNone:
		return "none"
	case EncryptionStandard:
		return "standard"
	case EncryptionAES128:
		return "aes-128"
	case EncryptionAES256:
		return "aes-256"
	default:
		return "unknown"
	}
}

// AESKeyStrength is the key size used with AES encryption.
type AESKeyStrength int32

const (
	AESKeyStrength128 = AESKeyStrength(ffi.AESKeyStrength128)
	AESKeyStrength192 = AESKeyStrength(ffi.AESKeyStrength192)
	AESKeyStrength256 = AESKeyStrength(ffi.AESKeyStrength256)
)

func (s AESKeyStrength) String() string {
	switch s {
	case AESKeyStrength128:
		return "128"
	case AESKeyStrength192:
		return "192"
	case AESKeyStrength256:
		return "256"
	default:
		return "unknown"
	}
}

// Parameters controls how entries are added to an archive. The zero value is
// not useful; start from DefaultParameters or pass nil to the Add methods to
// get the defaults.
type Parameters struct {
	CompressionLevel  CompressionLevel
	CompressionMethod CompressionMethod
	EncryptionMethod  EncryptionMethod
	AESKeyStrength    AESKeyStrength

	// Password encrypts the entry when EncryptionMethod is not
	// EncryptionNone. The empty string means no password.
	Password string
}

// DefaultParameters returns deflate at normal level with no encryption,
// applying any given options.
func DefaultParameters(optFns ...func(*Parameters)) *Parameters {
	p := &Parameters{
		CompressionLevel:  CompressionLevelNormal,
		CompressionMethod: Deflate,
		EncryptionMethod:  EncryptionNone,
		AESKeyStrength:    AESKeyStrength256,
	}
	for _, fn := range optFns {
		fn(p)
	}

	return p
}

// WithCompressionLevel sets the compression level.
func WithCompressionLevel(level CompressionLevel) func(*Parameters) {
	return func(p *Parameters) {
		p.CompressionLevel = level
	}
}

// WithCompressionMethod sets the compression method.
func WithCompressionMethod(method CompressionMethod) func(*Parameters) {
	return func(p *Parameters) {
		p.CompressionMethod = method
	}
}

// WithStandardEncryption enables legacy ZipCrypto encryption with the given password.
func WithStandardEncryption(password string) func(*Parameters) {
	return func(p *Parameters) {
		p.EncryptionMethod = EncryptionStandard
		p.Password = password
	}
}

// WithAES128Encryption enables AES encryption with a 128-bit key and the given password.
func WithAES128Encryption(password string) func(*Parameters) {
	return func(p *Parameters) {
		p.EncryptionMethod = EncryptionAES128
		p.AESKeyStrength = AESKeyStrength128
		p.Password = password
	}
}

// WithAES256Encryption enables AES encryption with a 256-bit key and the given password.
func WithAES256Encryption(password string) func(*Parameters) {
	return func(p *Parameters) {
		p.EncryptionMethod = EncryptionAES256
		p.AESKeyStrength = AESKeyStrength256
		p.Password = password
	}
}
