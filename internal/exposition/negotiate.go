package exposition

import (
	"io"
	"mime"

	"github.com/matttproud/golang_protobuf_extensions/pbutil"
	dto "github.com/prometheus/client_model/go"
)

// protoMediaType is the media type announced for delimited protobuf bodies,
// mirroring expfmt.decode.go's ProtoType/ProtoSubType pairing.
const protoMediaType = "application/vnd.google.protobuf"

// AcceptHeader is the fixed Accept header every scrape request sends,
// preferring delimited protobuf and falling back to text format 0.0.4
// (spec.md §4.6 step 2 / §6).
const AcceptHeader = "application/vnd.google.protobuf;proto=io.prometheus.client.MetricFamily;encoding=delimited;q=0.7,text/plain;version=0.0.4;q=0.3"

// IsProtoDelimited inspects a response Content-Type header value and
// reports whether the body must be read as delimited protobuf rather than
// text format. Any value that fails to parse, or that isn't the protobuf
// media type, is treated as text — matching spec.md §4.6 step 4's "any
// other media type, including text/plain" fallback.
func IsProtoDelimited(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == protoMediaType
}

// DecodeDelimitedProtobuf repeatedly decodes length-delimited
// io.prometheus.client.MetricFamily protobuf messages from r until the
// stream is exhausted, converting each into the local MetricFamily model.
// Grounded on expfmt/decode.go's protoDecoder, which also layers
// pbutil.ReadDelimited over a raw io.Reader.
func DecodeDelimitedProtobuf(r io.Reader) ([]*MetricFamily, error) {
	var result []*MetricFamily
	for {
		var pb dto.MetricFamily
		_, err := pbutil.ReadDelimited(r, &pb)
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, fromProto(&pb))
	}
}

func fromProto(pb *dto.MetricFamily) *MetricFamily {
	fam := &MetricFamily{
		Name: pb.GetName(),
		Help: pb.GetHelp(),
		Kind: kindFromProto(pb.GetType()),
	}
	for _, m := range pb.GetMetric() {
		fam.Metrics = append(fam.Metrics, metricFromProto(fam.Kind, m))
	}
	return fam
}

func kindFromProto(t dto.MetricType) MetricKind {
	switch t {
	case dto.MetricType_COUNTER:
		return Counter
	case dto.MetricType_GAUGE:
		return Gauge
	case dto.MetricType_HISTOGRAM:
		return Histogram
	case dto.MetricType_SUMMARY:
		return Summary
	default:
		return Untyped
	}
}

func metricFromProto(kind MetricKind, m *dto.Metric) Metric {
	out := Metric{TimestampMs: m.GetTimestampMs()}
	for _, lp := range m.GetLabel() {
		out.Labels = append(out.Labels, LabelPair{Name: lp.GetName(), Value: lp.GetValue()})
	}
	switch kind {
	case Counter:
		out.Value = m.GetCounter().GetValue()
	case Gauge:
		out.Value = m.GetGauge().GetValue()
	case Untyped:
		out.Value = m.GetUntyped().GetValue()
	case Histogram:
		h := m.GetHistogram()
		out.SampleSum = h.GetSampleSum()
		out.SampleCount = h.GetSampleCount()
		for _, b := range h.GetBucket() {
			out.Buckets = append(out.Buckets, Bucket{
				UpperBound:      b.GetUpperBound(),
				CumulativeCount: b.GetCumulativeCount(),
			})
		}
	case Summary:
		s := m.GetSummary()
		out.SampleSum = s.GetSampleSum()
		out.SampleCount = s.GetSampleCount()
		for _, q := range s.GetQuantile() {
			out.Quantiles = append(out.Quantiles, Quantile{
				Quantile: q.GetQuantile(),
				Value:    q.GetValue(),
			})
		}
	}
	return out
}
