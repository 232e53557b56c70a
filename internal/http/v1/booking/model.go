package booking

import (
	bookingctx "github.com/zymoapp/rental-api/internal/booking"
)

// AddressComponent is one structured part of a pickup place's address.
type AddressComponent struct {
	LongName  string   `json:"long_name"  doc:"Full component text"        example:"Mumbai"`
	ShortName string   `json:"short_name" doc:"Abbreviated component text" example:"Mumbai"`
	Types     []string `json:"types"      doc:"Component type labels"      example:"[\"locality\",\"political\"]"`
}

// Place is the persisted subset of a pickup place. Anything a client sends
// beyond these fields is dropped before storage.
type Place struct {
	Name              string             `json:"name"              doc:"Display name"   example:"Chhatrapati Shivaji Terminus"`
	Lat               float64            `json:"lat"               doc:"Latitude"       example:"18.9398"`
	Lng               float64            `json:"lng"               doc:"Longitude"      example:"72.8355"`
	AddressComponents []AddressComponent `json:"addressComponents" doc:"Address breakdown"`
}

// Context is the stored booking selection. When Consented is false the
// remaining fields are always empty; when true an empty field was simply
// never stored or has expired.
type Context struct {
	Consented bool   `json:"consented"           doc:"Whether persistence is allowed"`
	Location  string `json:"location,omitempty"  doc:"Search location"  example:"Mumbai"`
	StartDate string `json:"startDate,omitempty" doc:"Rental start"     example:"2026-09-01T10:00"`
	EndDate   string `json:"endDate,omitempty"   doc:"Rental end"       example:"2026-09-03T10:00"`
	Place     *Place `json:"place,omitempty"     doc:"Pickup place"`
}

func toStoredPlace(p *Place) *bookingctx.Place {
	if p == nil {
		return nil
	}
	out := &bookingctx.Place{Name: p.Name, Lat: p.Lat, Lng: p.Lng}
	for _, ac := range p.AddressComponents {
		out.AddressComponents = append(out.AddressComponents, bookingctx.AddressComponent{
			LongName:  ac.LongName,
			ShortName: ac.ShortName,
			Types:     ac.Types,
		})
	}
	return out
}

func fromStoredPlace(p *bookingctx.Place) *Place {
	if p == nil {
		return nil
	}
	out := &Place{Name: p.Name, Lat: p.Lat, Lng: p.Lng}
	for _, ac := range p.AddressComponents {
		out.AddressComponents = append(out.AddressComponents, AddressComponent{
			LongName:  ac.LongName,
			ShortName: ac.ShortName,
			Types:     ac.Types,
		})
	}
	return out
}
