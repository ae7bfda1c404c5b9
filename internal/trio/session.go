package trio

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/klauspost/compress/gzip"
)

// Session snapshots persist a session's variable bindings as gzipped JSON.
// Continuations and futures have no durable form and degrade to Unit on
// save, matching their behavior under value copying.

type snapValue struct {
	Kind  string      `json:"kind"`
	Num   float64     `json:"num,omitempty"`
	Str   string      `json:"str,omitempty"`
	Bool  bool        `json:"bool,omitempty"`
	Color []uint8     `json:"color,omitempty"`
	Elems []snapValue `json:"elems,omitempty"`
	Pairs []snapPair  `json:"pairs,omitempty"`
}

type snapPair struct {
	Key snapValue `json:"key"`
	Val snapValue `json:"val"`
}

type snapshot struct {
	Vars map[string]snapValue `json:"vars"`
}

// SaveSession writes the environment's own bindings to path.
func SaveSession(path string, env *Env) error {
	snap := snapshot{Vars: make(map[string]snapValue)}
	for name, v := range env.Snapshot() {
		snap.Vars[name] = freeze(v)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		zw.Close()
		return fmt.Errorf("save session: %w", err)
	}
	return zw.Close()
}

// LoadSession reads a snapshot and binds every saved variable into env.
func LoadSession(path string, env *Env) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	defer zr.Close()

	var snap snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	names := make([]string, 0, len(snap.Vars))
	for name := range snap.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.Set(name, thaw(snap.Vars[name]))
	}
	return nil
}

func freeze(v Value) snapValue {
	switch v.Tag {
	case TNum:
		return snapValue{Kind: "num", Num: v.Num}
	case TStr:
		return snapValue{Kind: "str", Str: v.Str}
	case TBool:
		return snapValue{Kind: "bool", Bool: v.Bool}
	case TColor:
		return snapValue{Kind: "color", Color: []uint8{v.Color.R, v.Color.G, v.Color.B}}
	case TArray:
		out := snapValue{Kind: "array"}
		for _, el := range v.Arr {
			out.Elems = append(out.Elems, freeze(el))
		}
		return out
	case TMap:
		out := snapValue{Kind: "map"}
		for _, p := range v.Map {
			out.Pairs = append(out.Pairs, snapPair{Key: freeze(p.Key), Val: freeze(p.Val)})
		}
		return out
	default:
		// Unit, futures, continuations.
		return snapValue{Kind: "unit"}
	}
}

func thaw(s snapValue) Value {
	switch s.Kind {
	case "num":
		return NumVal(s.Num)
	case "str":
		return StrVal(s.Str)
	case "bool":
		return BoolVal(s.Bool)
	case "color":
		if len(s.Color) == 3 {
			return ColorVal(NewColor(s.Color[0], s.Color[1], s.Color[2]))
		}
		return Unit
	case "array":
		elems := make([]Value, 0, len(s.Elems))
		for _, el := range s.Elems {
			elems = append(elems, thaw(el))
		}
		return ArrayVal(elems)
	case "map":
		pairs := make([]Pair, 0, len(s.Pairs))
		for _, p := range s.Pairs {
			pairs = append(pairs, Pair{Key: thaw(p.Key), Val: thaw(p.Val)})
		}
		return MapVal(pairs)
	default:
		return Unit
	}
}
