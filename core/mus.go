package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted document schema. Composed by hand:
// the schema is small and stable, and the pointer-optional fields read
// better spelled out than generated.
var (
	RoleMUS            = roleSer{}
	MessageMUS         = messageSer{}
	SourceMUS          = sourceSer{}
	LabelsMUS          = labelsSer{}
	MetaMUS            = metaSer{}
	CanonicalRecordMUS = canonicalRecordSer{}

	timeMUS     = timeSer{}
	optTimeMUS  = ord.NewPtrSer[time.Time](timeMUS)
	optStrMUS   = ord.NewPtrSer[string](ord.String)
	optBoolMUS  = ord.NewPtrSer[bool](ord.Bool)
	tagsMUS     = ord.NewSliceSer[string](ord.String)
	messagesMUS = ord.NewSliceSer[Message](MessageMUS)
)

var (
	_ mus.Serializer[time.Time]       = timeSer{}
	_ mus.Serializer[Role]            = roleSer{}
	_ mus.Serializer[Message]         = messageSer{}
	_ mus.Serializer[CanonicalRecord] = canonicalRecordSer{}
)

// timeSer encodes timestamps as Unix microseconds, matching the
// micro-precision the store keeps elsewhere.
type timeSer struct{}

func (timeSer) Marshal(v time.Time, bs []byte) int {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func (timeSer) Size(v time.Time) int {
	return varint.Int64.Size(v.UnixMicro())
}

func (timeSer) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

type roleSer struct{}

func (roleSer) Marshal(v Role, bs []byte) int {
	return varint.Int.Marshal(int(v), bs)
}

func (roleSer) Unmarshal(bs []byte) (Role, int, error) {
	i, n, err := varint.Int.Unmarshal(bs)
	return Role(i), n, err
}

func (roleSer) Size(v Role) int {
	return varint.Int.Size(int(v))
}

func (roleSer) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

type messageSer struct{}

func (messageSer) Marshal(v Message, bs []byte) (n int) {
	n = RoleMUS.Marshal(v.Role, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += optTimeMUS.Marshal(v.Timestamp, bs[n:])
	n += optStrMUS.Marshal(v.Language, bs[n:])
	return n
}

func (messageSer) Unmarshal(bs []byte) (v Message, n int, err error) {
	var n1 int
	if v.Role, n, err = RoleMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Timestamp, n1, err = optTimeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Language, n1, err = optStrMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (messageSer) Size(v Message) (size int) {
	size = RoleMUS.Size(v.Role)
	size += ord.String.Size(v.Text)
	size += optTimeMUS.Size(v.Timestamp)
	size += optStrMUS.Size(v.Language)
	return size
}

func (messageSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = RoleMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = optTimeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = optStrMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type sourceSer struct{}

func (sourceSer) Marshal(v Source, bs []byte) (n int) {
	n = ord.String.Marshal(v.Platform, bs)
	n += ord.String.Marshal(v.Dataset, bs[n:])
	n += ord.String.Marshal(v.Split, bs[n:])
	return n
}

func (sourceSer) Unmarshal(bs []byte) (v Source, n int, err error) {
	var n1 int
	if v.Platform, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Dataset, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Split, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	return v, n + n1, nil
}

func (sourceSer) Size(v Source) int {
	return ord.String.Size(v.Platform) + ord.String.Size(v.Dataset) + ord.String.Size(v.Split)
}

func (sourceSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type labelsSer struct{}

func (labelsSer) Marshal(v Labels, bs []byte) (n int) {
	n = optStrMUS.Marshal(v.Intent, bs)
	n += optStrMUS.Marshal(v.Category, bs[n:])
	n += optBoolMUS.Marshal(v.Resolved, bs[n:])
	return n
}

func (labelsSer) Unmarshal(bs []byte) (v Labels, n int, err error) {
	var n1 int
	if v.Intent, n, err = optStrMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Category, n1, err = optStrMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Resolved, n1, err = optBoolMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	return v, n + n1, nil
}

func (labelsSer) Size(v Labels) int {
	return optStrMUS.Size(v.Intent) + optStrMUS.Size(v.Category) + optBoolMUS.Size(v.Resolved)
}

func (labelsSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = optStrMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = optStrMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = optBoolMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type metaSer struct{}

func (metaSer) Marshal(v Meta, bs []byte) (n int) {
	n = tagsMUS.Marshal(v.Tags, bs)
	n += ord.String.Marshal(v.RawRowID, bs[n:])
	n += timeMUS.Marshal(v.ImportedAt, bs[n:])
	return n
}

func (metaSer) Unmarshal(bs []byte) (v Meta, n int, err error) {
	var n1 int
	if v.Tags, n, err = tagsMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.RawRowID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ImportedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	return v, n + n1, nil
}

func (metaSer) Size(v Meta) int {
	return tagsMUS.Size(v.Tags) + ord.String.Size(v.RawRowID) + timeMUS.Size(v.ImportedAt)
}

func (metaSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = tagsMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = timeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type canonicalRecordSer struct{}

func (canonicalRecordSer) Marshal(v CanonicalRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ConversationID, bs)
	n += SourceMUS.Marshal(v.Source, bs[n:])
	n += messagesMUS.Marshal(v.Messages, bs[n:])
	n += LabelsMUS.Marshal(v.Labels, bs[n:])
	n += MetaMUS.Marshal(v.Meta, bs[n:])
	return n
}

func (canonicalRecordSer) Unmarshal(bs []byte) (v CanonicalRecord, n int, err error) {
	var n1 int
	if v.ConversationID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Source, n1, err = SourceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Messages, n1, err = messagesMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Labels, n1, err = LabelsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Meta, n1, err = MetaMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	return v, n + n1, nil
}

func (canonicalRecordSer) Size(v CanonicalRecord) (size int) {
	size = ord.String.Size(v.ConversationID)
	size += SourceMUS.Size(v.Source)
	size += messagesMUS.Size(v.Messages)
	size += LabelsMUS.Size(v.Labels)
	size += MetaMUS.Size(v.Meta)
	return size
}

func (canonicalRecordSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	for _, skip := range []func([]byte) (int, error){
		SourceMUS.Skip, messagesMUS.Skip, LabelsMUS.Skip, MetaMUS.Skip,
	} {
		if n1, err = skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}
