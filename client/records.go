package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arloliu/go-gscf/dataframe"
	"github.com/arloliu/go-gscf/gscf"
)

// Action names and result envelope keys of the GSCF read API.
const (
	actionGetStudies          = "getStudies"
	actionGetSubjectsForStudy = "getSubjectsForStudy"
	actionGetAssaysForStudy   = "getAssaysForStudy"
	actionGetSamplesForAssay  = "getSamplesForAssay"
	actionGetMeasurementData  = "getMeasurementDataForAssay"

	optionStudyToken = "studyToken"
	optionAssayToken = "assayToken"
)

// GetStudies returns all studies visible to the authenticated user. Not all
// of them are necessarily readable; samples and measurements can be private.
func (s *Session) GetStudies(ctx context.Context) ([]gscf.Record, error) {
	raw, err := s.invoke(ctx, actionGetStudies, nil)
	if err != nil {
		return nil, err
	}

	return decodeRecordList(actionGetStudies, "studies", raw)
}

// GetSubjectsForStudy returns the subjects of the given studies.
//
// One call is dispatched per token and the results are concatenated in input
// order without deduplication. With no tokens it returns an empty result and
// dispatches nothing.
func (s *Session) GetSubjectsForStudy(ctx context.Context, studyTokens ...string) ([]gscf.Record, error) {
	return s.mergeRecords(ctx, actionGetSubjectsForStudy, "subjects", optionStudyToken, studyTokens)
}

// GetAssaysForStudy returns the assays of the given studies.
//
// One call is dispatched per token and the results are concatenated in input
// order without deduplication. With no tokens it returns an empty result and
// dispatches nothing.
func (s *Session) GetAssaysForStudy(ctx context.Context, studyTokens ...string) ([]gscf.Record, error) {
	return s.mergeRecords(ctx, actionGetAssaysForStudy, "assays", optionStudyToken, studyTokens)
}

// GetSamplesForAssay returns the samples of the given assays.
//
// One call is dispatched per token and the results are concatenated in input
// order without deduplication. With no tokens it returns an empty result and
// dispatches nothing.
func (s *Session) GetSamplesForAssay(ctx context.Context, assayTokens ...string) ([]gscf.Record, error) {
	return s.mergeRecords(ctx, actionGetSamplesForAssay, "samples", optionAssayToken, assayTokens)
}

// GetMeasurementDataForAssay returns the measurements of the given assays.
//
// The service reports measurements as a mapping from sample token to field
// mapping instead of a record list; each response is flattened into records
// with an injected "token" field, ordered by ascending token, and the
// per-token results are concatenated in input order.
func (s *Session) GetMeasurementDataForAssay(ctx context.Context, assayTokens ...string) ([]gscf.Record, error) {
	merged := make([]gscf.Record, 0)
	for _, token := range assayTokens {
		raw, err := s.invoke(ctx, actionGetMeasurementData, map[string]string{optionAssayToken: token})
		if err != nil {
			return nil, err
		}

		byToken, err := decodeRecordMap(actionGetMeasurementData, "measurements", raw)
		if err != nil {
			return nil, err
		}
		merged = append(merged, gscf.MeasurementRecords(byToken)...)
	}

	return merged, nil
}

// GetStudiesTable returns all visible studies as a table indexed by token.
func (s *Session) GetStudiesTable(ctx context.Context) (*dataframe.Table, error) {
	if err := s.requireDataFrame(); err != nil {
		return nil, err
	}

	records, err := s.GetStudies(ctx)
	if err != nil {
		return nil, err
	}

	return dataframe.FromRecords(records)
}

// GetSubjectsForStudyTable returns the subjects of the given studies as a
// table indexed by token.
func (s *Session) GetSubjectsForStudyTable(ctx context.Context, studyTokens ...string) (*dataframe.Table, error) {
	if err := s.requireDataFrame(); err != nil {
		return nil, err
	}

	records, err := s.GetSubjectsForStudy(ctx, studyTokens...)
	if err != nil {
		return nil, err
	}

	return dataframe.FromRecords(records)
}

// GetAssaysForStudyTable returns the assays of the given studies as a table
// indexed by token.
func (s *Session) GetAssaysForStudyTable(ctx context.Context, studyTokens ...string) (*dataframe.Table, error) {
	if err := s.requireDataFrame(); err != nil {
		return nil, err
	}

	records, err := s.GetAssaysForStudy(ctx, studyTokens...)
	if err != nil {
		return nil, err
	}

	return dataframe.FromRecords(records)
}

// GetSamplesForAssayTable returns the samples of the given assays as a table
// indexed by token.
func (s *Session) GetSamplesForAssayTable(ctx context.Context, assayTokens ...string) (*dataframe.Table, error) {
	if err := s.requireDataFrame(); err != nil {
		return nil, err
	}

	records, err := s.GetSamplesForAssay(ctx, assayTokens...)
	if err != nil {
		return nil, err
	}

	return dataframe.FromRecords(records)
}

// GetMeasurementDataForAssayTable returns the measurements of the given
// assays as a table indexed by sample token.
func (s *Session) GetMeasurementDataForAssayTable(ctx context.Context, assayTokens ...string) (*dataframe.Table, error) {
	if err := s.requireDataFrame(); err != nil {
		return nil, err
	}

	records, err := s.GetMeasurementDataForAssay(ctx, assayTokens...)
	if err != nil {
		return nil, err
	}

	return dataframe.FromRecords(records)
}

// requireDataFrame fails with gscf.ErrDataFrameDisabled when the session was
// built without tabular support. The check runs before any dispatch, so a
// refused table request leaves the sequence counter untouched.
func (s *Session) requireDataFrame() error {
	if !s.cfg.DataFrameEnabled() {
		return gscf.ErrDataFrameDisabled
	}

	return nil
}

// mergeRecords dispatches one call per token and concatenates the extracted
// record lists in input order.
func (s *Session) mergeRecords(ctx context.Context, action, resultKey, tokenKey string, tokens []string) ([]gscf.Record, error) {
	merged := make([]gscf.Record, 0)
	for _, token := range tokens {
		raw, err := s.invoke(ctx, action, map[string]string{tokenKey: token})
		if err != nil {
			return nil, err
		}

		records, err := decodeRecordList(action, resultKey, raw)
		if err != nil {
			return nil, err
		}
		merged = append(merged, records...)
	}

	return merged, nil
}

// decodeRecordList extracts the record list stored under resultKey in an
// action response.
func decodeRecordList(action, resultKey string, raw json.RawMessage) ([]gscf.Record, error) {
	body, err := resultField(action, resultKey, raw)
	if err != nil {
		return nil, err
	}

	var records []gscf.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &gscf.ProtocolError{Action: action, Err: err}
	}

	return records, nil
}

// decodeRecordMap extracts the token-to-fields mapping stored under
// resultKey in an action response.
func decodeRecordMap(action, resultKey string, raw json.RawMessage) (map[string]gscf.Record, error) {
	body, err := resultField(action, resultKey, raw)
	if err != nil {
		return nil, err
	}

	var byToken map[string]gscf.Record
	if err := json.Unmarshal(body, &byToken); err != nil {
		return nil, &gscf.ProtocolError{Action: action, Err: err}
	}

	return byToken, nil
}

func resultField(action, resultKey string, raw json.RawMessage) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &gscf.ProtocolError{Action: action, Err: err}
	}

	body, ok := envelope[resultKey]
	if !ok {
		return nil, &gscf.ProtocolError{Action: action, Err: fmt.Errorf("response has no %q field", resultKey)}
	}

	return body, nil
}
