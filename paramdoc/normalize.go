package paramdoc

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bobuhiro11/memsysexplorer/axisenum"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
)

// kv is one ordered top-level key/value pair from the parameter document.
// Walking these in file order, rather than a Go map (whose iteration
// order is unspecified), is what makes the "last-read wins" rule of
// spec.md §4.1/§9 actually reproducible.
type kv struct {
	key   string
	value *yaml.Node
}

func orderedPairs(root *yaml.Node) ([]kv, error) {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		doc = doc.Content[0]
	}

	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level document is not a mapping", ErrMalformedDocument)
	}

	pairs := make([]kv, 0, len(doc.Content)/2)

	for i := 0; i+1 < len(doc.Content); i += 2 {
		pairs = append(pairs, kv{key: doc.Content[i].Value, value: doc.Content[i+1]})
	}

	return pairs, nil
}

// fromDocument walks root's top-level mapping in file order, dispatching
// each key to the matching normalizer. Processing strictly in file order
// is what makes a later occurrence of an equivalent key (the nested vs.
// flat spelling of the same field) win, with no extra bookkeeping beyond
// a plain sequential overwrite.
func fromDocument(root *yaml.Node) (InputParameter, error) {
	pairs, err := orderedPairs(root)
	if err != nil {
		return InputParameter{}, err
	}

	p := defaults()

	var forceKeys axisenum.ForceKeys

	for _, pair := range pairs {
		if err := applyKey(&p, &forceKeys, pair); err != nil {
			return InputParameter{}, err
		}
	}

	if p.UseCactiAssumption {
		p.Ranges.ApplyCactiAssumption(p.WordWidthBits)
	}

	forceKeys.Apply(&p.Ranges)

	return p, nil
}

func defaults() InputParameter {
	return InputParameter{
		DesignTarget:       paramtypes.Cache,
		OptimizationTarget: paramtypes.ReadLatency,
		CacheAccessMode:    paramtypes.NormalAccess,
		ProcessNodeReadNM:  45,
		ProcessNodeWriteNM: 45,
		DeviceRoadmapRead:  paramtypes.HP,
		DeviceRoadmapWrite: paramtypes.HP,
		TemperatureK:       350,
		Associativity:      1,
		Ranges:             axisenum.Default(),
		WriteScheme:        paramtypes.NormalWrite,
	}
}

func applyKey(p *InputParameter, f *axisenum.ForceKeys, pair kv) error {
	switch pair.key {
	case "DesignTarget":
		return setEnum(pair, paramtypes.ParseDesignTarget, &p.DesignTarget)
	case "OptimizationTarget":
		return setEnum(pair, paramtypes.ParseOptimizationTarget, &p.OptimizationTarget)
	case "CacheAccessMode":
		return setCacheAccessMode(pair, p)
	case "WriteScheme":
		return setEnum(pair, paramtypes.ParseWriteScheme, &p.WriteScheme)

	case "Capacity":
		return setSizeBits(pair, &p.CapacityBits, 1)
	case "Capacity_KB":
		return setFlatSizeBits(pair, &p.CapacityBits, 8*1024)
	case "Capacity_MB":
		return setFlatSizeBits(pair, &p.CapacityBits, 8*1024*1024)
	case "Capacity_bits":
		return setFlatSizeBits(pair, &p.CapacityBits, 1)

	case "WordWidth", "WordWidth_bits":
		return setFlatInt(pair, &p.WordWidthBits)
	case "Associativity":
		return setFlatInt(pair, &p.Associativity)

	case "ProcessNode", "ProcessNode_nm":
		return setFlatIntPair(pair, &p.ProcessNodeReadNM, &p.ProcessNodeWriteNM)
	case "ProcessNodeRead_nm":
		return setFlatInt(pair, &p.ProcessNodeReadNM)
	case "ProcessNodeWrite_nm":
		return setFlatInt(pair, &p.ProcessNodeWriteNM)

	case "DeviceRoadmap":
		return setEnumPair(pair, paramtypes.ParseDeviceRoadmap, &p.DeviceRoadmapRead, &p.DeviceRoadmapWrite)
	case "DeviceRoadmapRead":
		return setEnum(pair, paramtypes.ParseDeviceRoadmap, &p.DeviceRoadmapRead)
	case "DeviceRoadmapWrite":
		return setEnum(pair, paramtypes.ParseDeviceRoadmap, &p.DeviceRoadmapWrite)

	case "Temperature", "Temperature_K":
		return setFlatFloat(pair, &p.TemperatureK)

	case "EnablePruning":
		return setFlatBool(pair, &p.EnablePruning)
	case "UseCactiAssumption":
		return setFlatBool(pair, &p.UseCactiAssumption)

	case "MemoryCellInputFile":
		return setFlatString(pair, &p.MemoryCellInputFile)

	case "FlashPageSize_bytes":
		return setFlatSizeBits(pair, &p.FlashPageSizeBits, 8)
	case "FlashBlockSize_KB":
		return setFlatSizeBits(pair, &p.FlashBlockSizeBits, 8*1024)

	case "NumRowMat":
		return setRange(pair, &p.Ranges.NumRowMat)
	case "NumColumnMat":
		return setRange(pair, &p.Ranges.NumColumnMat)
	case "NumActiveMatPerRow":
		return setRange(pair, &p.Ranges.NumActiveMatPerRow)
	case "NumActiveMatPerColumn":
		return setRange(pair, &p.Ranges.NumActiveMatPerColumn)
	case "NumRowSubarray":
		return setRange(pair, &p.Ranges.NumRowSubarray)
	case "NumColumnSubarray":
		return setRange(pair, &p.Ranges.NumColumnSubarray)
	case "NumActiveSubarrayPerRow":
		return setRange(pair, &p.Ranges.NumActiveSubarrayPerRow)
	case "NumActiveSubarrayPerColumn":
		return setRange(pair, &p.Ranges.NumActiveSubarrayPerColumn)
	case "MuxSenseAmp":
		return setRange(pair, &p.Ranges.MuxSenseAmp)
	case "MuxOutputLev1":
		return setRange(pair, &p.Ranges.MuxOutputLev1)
	case "MuxOutputLev2":
		return setRange(pair, &p.Ranges.MuxOutputLev2)
	case "NumRowPerSet":
		return setRange(pair, &p.Ranges.NumRowPerSet)

	case "ForceBank":
		return setForceBank(pair, f)
	case "ForceMat":
		return setForceMat(pair, f)
	case "ForceMuxSenseAmp":
		return setFlatInt(pair, &f.MuxSenseAmp)
	case "ForceMuxOutputLev1":
		return setFlatInt(pair, &f.MuxOutputLev1)
	case "ForceMuxOutputLev2":
		return setFlatInt(pair, &f.MuxOutputLev2)

	case "ApplyReadLatencyConstraint":
		return setFlatFloat(pair, &p.Constraints.ReadLatencyS)
	case "ApplyWriteLatencyConstraint":
		return setFlatFloat(pair, &p.Constraints.WriteLatencyS)
	case "ApplyReadEnergyConstraint":
		return setFlatFloat(pair, &p.Constraints.ReadEnergyJ)
	case "ApplyWriteEnergyConstraint":
		return setFlatFloat(pair, &p.Constraints.WriteEnergyJ)
	case "ApplyReadEDPConstraint":
		return setFlatFloat(pair, &p.Constraints.ReadEDP)
	case "ApplyWriteEDPConstraint":
		return setFlatFloat(pair, &p.Constraints.WriteEDP)
	case "ApplyLeakageConstraint":
		return setFlatFloat(pair, &p.Constraints.LeakageW)
	case "ApplyAreaConstraint":
		return setFlatFloat(pair, &p.Constraints.AreaM2)

	default:
		// Unknown keys are ignored silently (spec.md §6: "forward
		// compatibility").
		return nil
	}
}

func setEnum[T ~int](pair kv, parse func(string) (T, error), dst *T) error {
	s, err := scalarString(pair)
	if err != nil {
		return err
	}

	v, err := parse(s)
	if err != nil {
		return fmt.Errorf("%w: key %q: %w", ErrMalformedDocument, pair.key, err)
	}

	*dst = v

	return nil
}

func setEnumPair[T ~int](pair kv, parse func(string) (T, error), dstRead, dstWrite *T) error {
	if pair.value.Kind == yaml.MappingNode {
		readStr, writeStr, err := nestedReadWrite(pair)
		if err != nil {
			return err
		}

		r, err := parse(readStr)
		if err != nil {
			return fmt.Errorf("%w: key %q: %w", ErrMalformedDocument, pair.key, err)
		}

		w, err := parse(writeStr)
		if err != nil {
			return fmt.Errorf("%w: key %q: %w", ErrMalformedDocument, pair.key, err)
		}

		*dstRead, *dstWrite = r, w

		return nil
	}

	v, err := parse(pair.value.Value)
	if err != nil {
		return fmt.Errorf("%w: key %q: %w", ErrMalformedDocument, pair.key, err)
	}

	*dstRead, *dstWrite = v, v

	return nil
}

func nestedReadWrite(pair kv) (string, string, error) {
	var readVal, writeVal string

	for i := 0; i+1 < len(pair.value.Content); i += 2 {
		k := pair.value.Content[i].Value
		v := pair.value.Content[i+1].Value

		switch k {
		case "Read":
			readVal = v
		case "Write":
			writeVal = v
		}
	}

	return readVal, writeVal, nil
}

func setFlatIntPair(pair kv, dstRead, dstWrite *int) error {
	v, err := scalarInt(pair)
	if err != nil {
		return err
	}

	*dstRead, *dstWrite = v, v

	return nil
}

func setCacheAccessMode(pair kv, p *InputParameter) error {
	return setEnum(pair, paramtypes.ParseCacheAccessMode, &p.CacheAccessMode)
}

func setForceBank(pair kv, f *axisenum.ForceKeys) error {
	fields := map[string]*int{
		"TotalRows": &f.BankTotalRows, "TotalColumns": &f.BankTotalColumns,
		"ActiveRows": &f.BankActiveRows, "ActiveColumns": &f.BankActiveColumns,
	}

	return setSubfields(pair, fields)
}

func setForceMat(pair kv, f *axisenum.ForceKeys) error {
	fields := map[string]*int{
		"TotalRows": &f.MatTotalRows, "TotalColumns": &f.MatTotalColumns,
		"ActiveRows": &f.MatActiveRows, "ActiveColumns": &f.MatActiveColumns,
	}

	return setSubfields(pair, fields)
}

func setSubfields(pair kv, fields map[string]*int) error {
	if pair.value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: key %q must be a mapping", ErrMalformedDocument, pair.key)
	}

	for i := 0; i+1 < len(pair.value.Content); i += 2 {
		k := pair.value.Content[i].Value
		dst, ok := fields[k]

		if !ok {
			continue
		}

		v, err := strconv.Atoi(pair.value.Content[i+1].Value)
		if err != nil {
			return fmt.Errorf("%w: key %q.%q: %w", ErrMalformedDocument, pair.key, k, err)
		}

		*dst = v
	}

	return nil
}

func setRange(pair kv, dst *axisenum.Range) error {
	if pair.value.Kind == yaml.MappingNode {
		var minV, maxV int

		for i := 0; i+1 < len(pair.value.Content); i += 2 {
			k := pair.value.Content[i].Value
			v, err := strconv.Atoi(pair.value.Content[i+1].Value)

			if err != nil {
				return fmt.Errorf("%w: key %q.%q: %w", ErrMalformedDocument, pair.key, k, err)
			}

			switch k {
			case "Min":
				minV = v
			case "Max":
				maxV = v
			}
		}

		*dst = axisenum.Range{Min: minV, Max: maxV}

		return nil
	}

	v, err := scalarInt(pair)
	if err != nil {
		return err
	}

	*dst = axisenum.Range{Min: v, Max: v}

	return nil
}

func setSizeBits(pair kv, dst *int, bitsPerUnit int) error {
	if pair.value.Kind != yaml.MappingNode {
		v, err := scalarInt(pair)
		if err != nil {
			return err
		}

		*dst = v * bitsPerUnit

		return nil
	}

	var value float64

	var unit string

	for i := 0; i+1 < len(pair.value.Content); i += 2 {
		k := pair.value.Content[i].Value
		v := pair.value.Content[i+1].Value

		switch k {
		case "Value":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: key %q.Value: %w", ErrMalformedDocument, pair.key, err)
			}

			value = f
		case "Unit":
			unit = v
		}
	}

	mult, ok := unitBitsMultiplier(unit)
	if !ok {
		return fmt.Errorf("%w: key %q has unknown Unit %q", ErrMalformedDocument, pair.key, unit)
	}

	*dst = int(value * float64(mult))

	return nil
}

func setFlatSizeBits(pair kv, dst *int, bitsPerUnit int) error {
	v, err := scalarFloat(pair)
	if err != nil {
		return err
	}

	*dst = int(v * float64(bitsPerUnit))

	return nil
}

// unitBitsMultiplier converts a nested size document's Unit string into a
// bits-per-unit multiplier (spec.md §4.1: "Flash page size and block size
// are stored internally in bits ... multiplied by 8 and 8·1024
// respectively").
func unitBitsMultiplier(unit string) (int, bool) {
	switch strings.ToLower(unit) {
	case "bit", "bits":
		return 1, true
	case "byte", "bytes", "b":
		return 8, true
	case "kb":
		return 8 * 1024, true
	case "mb":
		return 8 * 1024 * 1024, true
	case "gb":
		return 8 * 1024 * 1024 * 1024, true
	default:
		return 0, false
	}
}

func setFlatInt(pair kv, dst *int) error {
	v, err := scalarInt(pair)
	if err != nil {
		return err
	}

	*dst = v

	return nil
}

func setFlatFloat(pair kv, dst *float64) error {
	v, err := scalarFloat(pair)
	if err != nil {
		return err
	}

	*dst = v

	return nil
}

func setFlatBool(pair kv, dst *bool) error {
	s, err := scalarString(pair)
	if err != nil {
		return err
	}

	switch s {
	case "true", "True", "yes", "Yes":
		*dst = true
	case "false", "False", "no", "No":
		*dst = false
	default:
		return fmt.Errorf("%w: key %q has unrecognized boolean spelling %q", ErrMalformedDocument, pair.key, s)
	}

	return nil
}

func setFlatString(pair kv, dst *string) error {
	s, err := scalarString(pair)
	if err != nil {
		return err
	}

	*dst = s

	return nil
}

func scalarString(pair kv) (string, error) {
	if pair.value.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: key %q must be a scalar", ErrMalformedDocument, pair.key)
	}

	return pair.value.Value, nil
}

func scalarInt(pair kv) (int, error) {
	s, err := scalarString(pair)
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q: %w", ErrMalformedDocument, pair.key, err)
	}

	return v, nil
}

func scalarFloat(pair kv) (float64, error) {
	s, err := scalarString(pair)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q: %w", ErrMalformedDocument, pair.key, err)
	}

	return v, nil
}
