package script

import (
	"strconv"

	"github.com/Shopify/go-lua"
	"github.com/louisbranch/dicebag/internal/services/dice/api/grpc/dicev1"
	"github.com/louisbranch/dicebag/internal/services/dice/client"
)

const diceTableName = "dice"

func (e *execution) registerDice(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{
		{Name: "roll", Function: e.diceRoll},
		{Name: "parse", Function: e.diceParse},
	}, 0)
	state.SetGlobal(diceTableName)
}

// diceRoll implements dice.roll(notation [, seed [, difficulty]]).
func (e *execution) diceRoll(state *lua.State) int {
	req := &dicev1.RollRequest{Notation: lua.CheckString(state, 1)}
	if !state.IsNoneOrNil(2) {
		seed := checkSeed(state, 2)
		req.Seed = &seed
	}
	if !state.IsNoneOrNil(3) {
		difficulty := lua.CheckInteger(state, 3)
		req.Difficulty = &difficulty
	}
	if err := e.ctx.Err(); err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}

	resp, err := e.runner.dice.Roll(e.ctx, req)
	if err != nil {
		lua.Errorf(state, "%s", client.UserMessage(err, e.runner.locale))
		return 0
	}
	e.mu.Lock()
	e.out.Rolls = append(e.out.Rolls, resp)
	e.mu.Unlock()

	pushRoll(state, resp)
	return 1
}

// diceParse implements dice.parse(notation).
func (e *execution) diceParse(state *lua.State) int {
	req := &dicev1.ParseRequest{Notation: lua.CheckString(state, 1)}
	if err := e.ctx.Err(); err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}

	resp, err := e.runner.dice.Parse(e.ctx, req)
	if err != nil {
		lua.Errorf(state, "%s", client.UserMessage(err, e.runner.locale))
		return 0
	}

	state.NewTable()
	setString(state, "notation", resp.Notation)
	setInt(state, "dice", resp.Dice)
	setInt(state, "sides", resp.Sides)
	setString(state, "keep_direction", resp.KeepDirection)
	setInt(state, "keep_count", resp.KeepCount)
	setInt(state, "modifier", resp.Modifier)
	setInt(state, "min_total", resp.MinTotal)
	setInt(state, "max_total", resp.MaxTotal)
	return 1
}

func pushRoll(state *lua.State, resp *dicev1.RollResponse) {
	state.NewTable()
	setString(state, "notation", resp.Notation)
	setInt(state, "sum", resp.Sum)
	setInt(state, "total", resp.Total)
	setInt(state, "throw_mod", resp.ThrowMod)
	setInts(state, "faces", resp.Faces)
	setInts(state, "dropped", resp.Dropped)
	setString(state, "text", resp.Text)
	setString(state, "seed", strconv.FormatInt(resp.Rng.SeedUsed, 10))
	if resp.Check != nil {
		state.PushBoolean(resp.Check.Success)
		state.SetField(-2, "success")
		setInt(state, "margin", resp.Check.Margin)
	}
}

// checkSeed reads a seed given as a decimal string or a number. Seeds are
// returned to scripts as strings since Lua numbers cannot hold every int64.
func checkSeed(state *lua.State, index int) int64 {
	if state.TypeOf(index) == lua.TypeString {
		text, _ := state.ToString(index)
		seed, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			lua.ArgumentError(state, index, "seed must be an integer")
		}
		return seed
	}
	return int64(lua.CheckInteger(state, index))
}

func setString(state *lua.State, key, value string) {
	state.PushString(value)
	state.SetField(-2, key)
}

func setInt(state *lua.State, key string, value int) {
	state.PushInteger(value)
	state.SetField(-2, key)
}

func setInts(state *lua.State, key string, values []int) {
	state.CreateTable(len(values), 0)
	for i, v := range values {
		state.PushInteger(v)
		state.RawSetInt(-2, i+1)
	}
	state.SetField(-2, key)
}
