package prefabs

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/tmago/duel/agent"
)

const scoreDispatchScript = `
__out_dash := dash
__out_artillery := artillery
__out_attack := attack
__r := score(dash, artillery, attack)
if is_array(__r) && len(__r) >= 3 {
	__out_dash = __r[0]
	__out_artillery = __r[1]
	__out_attack = __r[2]
}
`

// CompileScoreHook compiles a tengo script into an action-score hook. The
// script receives the floats `dash`, `artillery` and `attack` and defines a
// `score(dash, artillery, attack)` function returning a three-element array
// of adjusted scores. Compilation happens once; a script that fails at run
// time leaves the scores untouched.
func CompileScoreHook(src string) (agent.ScoreHook, error) {
	script := tengo.NewScript([]byte(src + "\n" + scoreDispatchScript))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("dash", 0.0)
	_ = script.Add("artillery", 0.0)
	_ = script.Add("attack", 0.0)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile score script: %w", err)
	}

	return func(s agent.Scores) agent.Scores {
		if err := compiled.Set("dash", s.Dash); err != nil {
			return s
		}
		if err := compiled.Set("artillery", s.Artillery); err != nil {
			return s
		}
		if err := compiled.Set("attack", s.Attack); err != nil {
			return s
		}
		if err := compiled.Run(); err != nil {
			return s
		}
		s.Dash = compiled.Get("__out_dash").Float()
		s.Artillery = compiled.Get("__out_artillery").Float()
		s.Attack = compiled.Get("__out_attack").Float()
		return s
	}, nil
}
