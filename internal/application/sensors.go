package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oraad/ogero-sensors/internal/domain"
)

// AttributePolicy decides what happens to extended sensor attributes on each
// refresh.
type AttributePolicy string

const (
	// AttributePolicyAccumulate merges every refresh into the attributes seen
	// so far. Months are never pruned and a month's later value wins.
	AttributePolicyAccumulate AttributePolicy = "accumulate"
	// AttributePolicyReplace keeps only the latest refresh.
	AttributePolicyReplace AttributePolicy = "replace"
)

func ParseAttributePolicy(raw string) (AttributePolicy, error) {
	switch AttributePolicy(raw) {
	case "", AttributePolicyAccumulate:
		return AttributePolicyAccumulate, nil
	case AttributePolicyReplace:
		return AttributePolicyReplace, nil
	default:
		return "", fmt.Errorf("unknown attribute policy %q", raw)
	}
}

type SensorState struct {
	UniqueID    string             `json:"unique_id"`
	Key         domain.SensorKey   `json:"key"`
	Available   bool               `json:"available"`
	Value       any                `json:"value"`
	Unit        string             `json:"unit,omitempty"`
	DeviceClass domain.DeviceClass `json:"device_class,omitempty"`
	Precision   *int               `json:"precision,omitempty"`
	Icon        string             `json:"icon,omitempty"`
	Attributes  map[string]string  `json:"attributes,omitempty"`
	Attribution string             `json:"attribution"`
}

type Entity interface {
	UniqueID() string
	Key() domain.SensorKey
	State() SensorState
	Close()
}

// Sensor projects one snapshot field.
type Sensor struct {
	entryID domain.EntryID
	desc    domain.SensorDescription
	source  SnapshotSource
}

var _ Entity = (*Sensor)(nil)

func NewSensor(entryID domain.EntryID, desc domain.SensorDescription, source SnapshotSource) *Sensor {
	return &Sensor{entryID: entryID, desc: desc, source: source}
}

func (s *Sensor) UniqueID() string {
	return domain.UniqueID(s.entryID, s.desc.Key)
}

func (s *Sensor) Key() domain.SensorKey {
	return s.desc.Key
}

func (s *Sensor) Description() domain.SensorDescription {
	return s.desc
}

// Value reports false while no refresh has succeeded.
func (s *Sensor) Value() (any, bool) {
	snapshot, ok := s.source.Snapshot()
	if !ok {
		return nil, false
	}
	return snapshot.Value(s.desc.Key)
}

func (s *Sensor) State() SensorState {
	value, ok := s.Value()
	return SensorState{
		UniqueID:    s.UniqueID(),
		Key:         s.desc.Key,
		Available:   ok,
		Value:       value,
		Unit:        s.desc.Unit,
		DeviceClass: s.desc.DeviceClass,
		Precision:   s.desc.Precision,
		Icon:        s.desc.Icon,
		Attribution: domain.Attribution,
	}
}

func (s *Sensor) Close() {}

// ExtendedSensor is a Sensor that also publishes month -> description
// attributes from the snapshot's state attributes.
type ExtendedSensor struct {
	*Sensor
	policy AttributePolicy

	mu          sync.Mutex
	attributes  map[string]string
	unsubscribe func()
}

var _ Entity = (*ExtendedSensor)(nil)

func NewExtendedSensor(entryID domain.EntryID, desc domain.SensorDescription, source SnapshotSource, policy AttributePolicy) *ExtendedSensor {
	s := &ExtendedSensor{
		Sensor:     NewSensor(entryID, desc, source),
		policy:     policy,
		attributes: map[string]string{},
	}
	s.unsubscribe = source.Subscribe(s.apply)
	if snapshot, ok := source.Snapshot(); ok {
		s.apply(snapshot)
	}

	return s
}

func (s *ExtendedSensor) apply(snapshot domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy == AttributePolicyReplace {
		s.attributes = map[string]string{}
	}
	for _, entry := range snapshot.Attributes(s.desc.Key) {
		s.attributes[entry.Month] = entry.Description
	}
}

func (s *ExtendedSensor) Attributes() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.attributes))
	for month, description := range s.attributes {
		out[month] = description
	}
	return out
}

func (s *ExtendedSensor) State() SensorState {
	state := s.Sensor.State()
	state.Attributes = s.Attributes()
	return state
}

func (s *ExtendedSensor) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func NewSensors(entryID domain.EntryID, source SnapshotSource, policy AttributePolicy) []Entity {
	entities := make([]Entity, 0, len(domain.SensorDescriptions())+len(domain.ExtendedSensorDescriptions()))
	for _, desc := range domain.SensorDescriptions() {
		entities = append(entities, NewSensor(entryID, desc, source))
	}
	for _, desc := range domain.ExtendedSensorDescriptions() {
		entities = append(entities, NewExtendedSensor(entryID, desc, source, policy))
	}
	return entities
}

func SortedMonths(attributes map[string]string) []string {
	months := make([]string, 0, len(attributes))
	for month := range attributes {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
