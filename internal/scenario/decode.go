package scenario

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"

	gamev1alpha1 "github.com/anvil-platform/depgame/api/v1alpha1"
)

var (
	scheme = runtime.NewScheme()
	codecs = serializer.NewCodecFactory(scheme, serializer.EnableStrict)

	// ErrUnexpectedKind indicates a decoded document is not a Scenario or ScenarioList.
	ErrUnexpectedKind = errors.New("unexpected object kind")
)

func init() {
	utilruntime.Must(gamev1alpha1.AddToScheme(scheme))
}

// Decode reads every Scenario in data. data may be JSON or YAML, and YAML may
// hold several documents; a ScenarioList contributes all of its items.
// Unknown fields are rejected.
func Decode(data []byte) ([]gamev1alpha1.Scenario, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(bytes.NewReader(data)))
	deserializer := codecs.UniversalDeserializer()

	var out []gamev1alpha1.Scenario
	for i := 0; ; i++ {
		doc, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read document %d: %w", i, err)
		}
		if len(bytes.TrimSpace(doc)) == 0 {
			continue
		}

		obj, gvk, err := deserializer.Decode(doc, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("decode document %d: %w", i, err)
		}
		switch o := obj.(type) {
		case *gamev1alpha1.Scenario:
			out = append(out, *o)
		case *gamev1alpha1.ScenarioList:
			out = append(out, o.Items...)
		default:
			return nil, fmt.Errorf("document %d: %w: %s", i, ErrUnexpectedKind, gvk)
		}
	}
	return out, nil
}

// LoadFile decodes the scenarios stored at path.
func LoadFile(path string) ([]gamev1alpha1.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	scenarios, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return scenarios, nil
}
