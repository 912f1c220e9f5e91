package organisation

import "errors"

// Type tags the stored form of an organisation.
type Type string

const (
	TypeMunicipality   Type = "municipality"
	TypeProvince       Type = "province"
	TypeWaterAuthority Type = "water_authority"
)

// ErrUnknownType indicates a stored organisation row carries a type tag
// outside the three recognized variants. This only happens with corrupted or
// badly migrated data; it is never reachable through the public constructors.
var ErrUnknownType = errors.New("organisation: unknown type tag")

// Organisation is the issuing governmental body of a record. It is a closed
// union: Municipality, Province and WaterAuthority are the only variants.
type Organisation interface {
	// Code returns the jurisdiction code (e.g. gm0363, pv27, ws0654).
	Code() string
	// Name returns the display name.
	Name() string

	sealed()
}

// Municipality identifies a Dutch municipality (gemeente).
type Municipality struct {
	JurisdictionCode string
	DisplayName      string
}

// Province identifies a province (provincie).
type Province struct {
	JurisdictionCode string
	DisplayName      string
}

// WaterAuthority identifies a water authority (waterschap).
type WaterAuthority struct {
	JurisdictionCode string
	DisplayName      string
}

func (m Municipality) Code() string   { return m.JurisdictionCode }
func (m Municipality) Name() string   { return m.DisplayName }
func (m Municipality) sealed()        {}
func (p Province) Code() string       { return p.JurisdictionCode }
func (p Province) Name() string       { return p.DisplayName }
func (p Province) sealed()            {}
func (w WaterAuthority) Code() string { return w.JurisdictionCode }
func (w WaterAuthority) Name() string { return w.DisplayName }
func (w WaterAuthority) sealed()      {}

// Triplet is the denormalized persisted form of an organisation:
// a type tag plus the code and name columns it governs.
type Triplet struct {
	Type Type
	Code string
	Name string
}

// Encode flattens an organisation into its persisted triplet. Total over the
// closed union and side-effect-free.
func Encode(org Organisation) Triplet {
	switch v := org.(type) {
	case Municipality:
		return Triplet{Type: TypeMunicipality, Code: v.JurisdictionCode, Name: v.DisplayName}
	case Province:
		return Triplet{Type: TypeProvince, Code: v.JurisdictionCode, Name: v.DisplayName}
	case WaterAuthority:
		return Triplet{Type: TypeWaterAuthority, Code: v.JurisdictionCode, Name: v.DisplayName}
	}
	// Unreachable: the union is sealed.
	return Triplet{}
}

// Decode reconstructs the union variant from a stored triplet. Returns
// ErrUnknownType when the tag matches no variant; callers must treat that as
// a server-side fault, not user input.
func Decode(t Triplet) (Organisation, error) {
	switch t.Type {
	case TypeMunicipality:
		return Municipality{JurisdictionCode: t.Code, DisplayName: t.Name}, nil
	case TypeProvince:
		return Province{JurisdictionCode: t.Code, DisplayName: t.Name}, nil
	case TypeWaterAuthority:
		return WaterAuthority{JurisdictionCode: t.Code, DisplayName: t.Name}, nil
	default:
		return nil, ErrUnknownType
	}
}
