package grpc

import (
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gourmet-gacha/gacha/internal/models"
)

// convertListingToValue converts a models.Listing to a struct value.
// Empty optional fields are omitted.
func convertListingToValue(l models.Listing) map[string]any {
	fields := map[string]any{
		"name":  l.Name,
		"genre": l.Genre,
	}
	for key, v := range map[string]string{
		"link":     l.Link,
		"location": l.Location,
		"station":  l.Station,
		"station2": l.Station2,
	} {
		if v != "" {
			fields[key] = v
		}
	}
	return fields
}

// convertListingFromValue converts a struct value to a models.Listing.
func convertListingFromValue(s *structpb.Struct) models.Listing {
	return models.Listing{
		Name:     stringField(s, "name"),
		Genre:    stringField(s, "genre"),
		Link:     stringField(s, "link"),
		Location: stringField(s, "location"),
		Station:  stringField(s, "station"),
		Station2: stringField(s, "station2"),
	}
}

// convertDrawResultToProto converts a models.DrawResult to a Draw response.
func convertDrawResultToProto(r models.DrawResult) (*structpb.Struct, error) {
	listings := make([]any, len(r.Listings))
	for i, l := range r.Listings {
		listings[i] = convertListingToValue(l)
	}
	return structpb.NewStruct(map[string]any{
		"query":    r.Query,
		"poolSize": r.PoolSize,
		"listings": listings,
	})
}

// convertDrawResultFromProto converts a Draw response to a models.DrawResult.
func convertDrawResultFromProto(s *structpb.Struct) models.DrawResult {
	result := models.DrawResult{
		Query:    stringField(s, "query"),
		PoolSize: int(s.GetFields()["poolSize"].GetNumberValue()),
	}
	for _, v := range s.GetFields()["listings"].GetListValue().GetValues() {
		if item := v.GetStructValue(); item != nil {
			result.Listings = append(result.Listings, convertListingFromValue(item))
		}
	}
	return result
}

// convertStatusToProto converts a models.CatalogStatus to a Status response.
func convertStatusToProto(st models.CatalogStatus) (*structpb.Struct, error) {
	fields := map[string]any{
		"phase":    st.Phase,
		"listings": st.Listings,
	}
	if st.Source != "" {
		fields["source"] = st.Source
	}
	if !st.LoadedAt.IsZero() {
		fields["loadedAt"] = st.LoadedAt.UTC().Format(time.RFC3339Nano)
	}
	if st.LastError != "" {
		fields["lastError"] = st.LastError
	}
	return structpb.NewStruct(fields)
}

// convertStatusFromProto converts a Status response to a models.CatalogStatus.
func convertStatusFromProto(s *structpb.Struct) models.CatalogStatus {
	st := models.CatalogStatus{
		Phase:     stringField(s, "phase"),
		Listings:  int(s.GetFields()["listings"].GetNumberValue()),
		Source:    stringField(s, "source"),
		LastError: stringField(s, "lastError"),
	}
	if raw := stringField(s, "loadedAt"); raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			st.LoadedAt = t
		}
	}
	return st
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}
