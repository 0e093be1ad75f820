package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted record types. The record set is two
// flat structs, so the serializers are written by hand from mus-go
// primitives. Timestamps are stored as Unix microseconds in UTC.
var (
	IDMUS      = idMUS{}
	CompanyMUS = companyMUS{}
	PolicyMUS  = policyMUS{}
)

var (
	_ mus.Serializer[ID]      = IDMUS
	_ mus.Serializer[Company] = CompanyMUS
	_ mus.Serializer[Policy]  = PolicyMUS
)

var (
	timeMUS   = timeMicroMUS{}
	topicsMUS = ord.NewSliceSer[string](ord.String)
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMicroMUS serializes time.Time as Unix microseconds. Sub-microsecond
// precision and the original location are not preserved.
type timeMicroMUS struct{}

func (timeMicroMUS) Marshal(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMicroMUS) Size(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMicroMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type companyMUS struct{}

func (companyMUS) Marshal(c Company, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Name, bs[n:])
	n += ord.String.Marshal(c.OperatingJurisdiction, bs[n:])
	n += ord.String.Marshal(c.Sector, bs[n:])
	n += timeMUS.Marshal(c.LastLogin, bs[n:])
	return
}

func (companyMUS) Unmarshal(bs []byte) (c Company, n int, err error) {
	var n1 int
	c.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	c.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.OperatingJurisdiction, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Sector, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.LastLogin, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (companyMUS) Size(c Company) (size int) {
	size = IDMUS.Size(c.Id)
	size += ord.String.Size(c.Name)
	size += ord.String.Size(c.OperatingJurisdiction)
	size += ord.String.Size(c.Sector)
	size += timeMUS.Size(c.LastLogin)
	return
}

func (companyMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = timeMUS.Skip(bs[n:])
	n += n1
	return
}

type policyMUS struct{}

func (policyMUS) Marshal(p Policy, bs []byte) (n int) {
	n = IDMUS.Marshal(p.Id, bs)
	n += ord.String.Marshal(p.Name, bs[n:])
	n += ord.String.Marshal(p.Geography, bs[n:])
	n += ord.String.Marshal(p.Sector, bs[n:])
	n += timeMUS.Marshal(p.PublishedDate, bs[n:])
	n += timeMUS.Marshal(p.UpdatedDate, bs[n:])
	n += ord.Bool.Marshal(p.Active, bs[n:])
	n += ord.String.Marshal(p.Description, bs[n:])
	n += topicsMUS.Marshal(p.Topics, bs[n:])
	n += ord.String.Marshal(p.SourceURL, bs[n:])
	return
}

func (policyMUS) Unmarshal(bs []byte) (p Policy, n int, err error) {
	var n1 int
	p.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	p.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Geography, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Sector, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.PublishedDate, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.UpdatedDate, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Active, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Topics, n1, err = topicsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.SourceURL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (policyMUS) Size(p Policy) (size int) {
	size = IDMUS.Size(p.Id)
	size += ord.String.Size(p.Name)
	size += ord.String.Size(p.Geography)
	size += ord.String.Size(p.Sector)
	size += timeMUS.Size(p.PublishedDate)
	size += timeMUS.Size(p.UpdatedDate)
	size += ord.Bool.Size(p.Active)
	size += ord.String.Size(p.Description)
	size += topicsMUS.Size(p.Topics)
	size += ord.String.Size(p.SourceURL)
	return
}

func (policyMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	for i := 0; i < 2; i++ {
		n1, err = timeMUS.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = topicsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
