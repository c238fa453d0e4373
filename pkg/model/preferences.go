package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// ErrInvalidInput is wrapped by every error caused by malformed preference data
var ErrInvalidInput = errors.New("invalid input")

// ErrTruncatedInput marks a preference stream holding fewer tokens than its declared size requires
var ErrTruncatedInput = fmt.Errorf("%w: truncated preferences", ErrInvalidInput)

// Preferences holds both families of preference lists, 0-indexed. Hospitals[h][r] is the student ranked r by hospital h
type Preferences struct {
	N         int
	Hospitals [][]int
	Students  [][]int
}

// RawPreferences is the decoded JSON document; N is nil when the document omits it
type RawPreferences struct {
	N         *int
	Hospitals [][]int
	Students  [][]int
}

// ParsePreferences reads the whitespace-tokenized textual format: n followed by n hospital lists and n student lists, all 1-indexed
func ParsePreferences(reader io.Reader) (Preferences, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		return Preferences{}, fmt.Errorf("cannot read preferences: %w", err)
	}

	tokens := strings.Fields(string(bytes))
	if len(tokens) == 0 {
		return Preferences{}, nil // Empty input stands for n = 0
	}

	n, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Preferences{}, fmt.Errorf("%w: size %q is not an integer", ErrInvalidInput, tokens[0])
	} else if n < 0 {
		return Preferences{}, fmt.Errorf("%w: size must not be negative: %v", ErrInvalidInput, n)
	}

	if n == 0 {
		return Preferences{}, nil
	}

	// 2n² <= available, written so that no product can overflow for a huge declared n
	if available := len(tokens) - 1; n > available/2/n {
		return Preferences{}, fmt.Errorf("%w: n = %v needs 2n² preferences, got %v tokens", ErrTruncatedInput, n, available)
	}
	expected := 1 + 2*n*n

	values := make([]int, 0, expected-1)
	for _, token := range tokens[1:expected] {
		value, err := strconv.Atoi(token)
		if err != nil {
			return Preferences{}, fmt.Errorf("%w: preference %q is not an integer", ErrInvalidInput, token)
		}
		values = append(values, value-1) // Convert to 0-indexed
	}

	lists := lo.Chunk(values, n)
	return Preferences{
		N:         n,
		Hospitals: lists[:n],
		Students:  lists[n:],
	}, nil
}

func PreferencesFromFile(file string) (Preferences, error) {
	fd, err := os.Open(file)
	if err != nil {
		return Preferences{}, err
	}
	defer fd.Close()

	return ParsePreferences(fd)
}

// PreferencesFromJson reads a JSON document with "hospitals" and "students" arrays of 1-indexed lists; "n" is optional
func PreferencesFromJson(file string) (Preferences, error) {
	fd, err := os.Open(file)
	if err != nil {
		return Preferences{}, err
	}
	defer fd.Close()

	return ParsePreferencesJson(fd)
}

func ParsePreferencesJson(reader io.Reader) (Preferences, error) {
	var inputJson map[string]any
	if err := json.NewDecoder(reader).Decode(&inputJson); err != nil {
		return Preferences{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return DecodePreferences(inputJson)
}

// DecodePreferences turns an already unmarshalled JSON object into 0-indexed preferences
func DecodePreferences(inputJson map[string]any) (Preferences, error) {
	var raw RawPreferences
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &raw,
		DecodeHook: integralFloatHook,
	})
	if err != nil {
		return Preferences{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return Preferences{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ProcessRawPreferences(raw), nil
}

// integralFloatHook refuses JSON numbers with a fractional part where an integer is expected
func integralFloatHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Int {
		return data, nil
	}
	if value := reflect.ValueOf(data).Float(); value != math.Trunc(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%v is not an integer", value)
	}
	return data, nil
}

// ProcessRawPreferences converts 1-indexed lists to 0-indexed ones, deriving n from the hospitals when the document omits it
func ProcessRawPreferences(raw RawPreferences) Preferences {
	n := len(raw.Hospitals)
	if raw.N != nil {
		n = *raw.N
	}

	toZeroIndexed := func(lists [][]int) [][]int {
		return lo.Map(lists, func(list []int, _ int) []int {
			return lo.Map(list, func(value int, _ int) int { return value - 1 })
		})
	}

	return Preferences{
		N:         n,
		Hospitals: toZeroIndexed(raw.Hospitals),
		Students:  toZeroIndexed(raw.Students),
	}
}

// WritePreferences writes preferences in the 1-indexed textual format
func WritePreferences(writer io.Writer, preferences Preferences) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%d\n", preferences.N)

	for _, list := range append(append([][]int{}, preferences.Hospitals...), preferences.Students...) {
		builder.WriteString(strings.Join(lo.Map(list, func(value int, _ int) string {
			return strconv.Itoa(value + 1)
		}), " "))
		builder.WriteByte('\n')
	}

	_, err := io.WriteString(writer, builder.String())
	return err
}
