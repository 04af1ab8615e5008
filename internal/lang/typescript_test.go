package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tsSample = `import { login, Session } from './auth';
import express from 'express';

export function greet(name: string): string {
  return "hi " + name;
}

const double = (x: number) => x * 2;

export class Button {
  render(): void {}
  click(): void {}
}

export interface Props {
  title: string;
}

export type ID = string | number;

enum Color { Red, Green }
`

func TestTypeScript_Functions(t *testing.T) {
	syms := extract(t, TypeScript, "src/widget.ts", tsSample)

	greet := findFunction(t, syms, "greet")
	assert.Equal(t, "greet(name: string): string", greet.Signature)
	assert.Equal(t, 4, greet.StartLine)
	assert.Equal(t, 6, greet.EndLine)

	double := findFunction(t, syms, "double")
	assert.Equal(t, "double(x: number)", double.Signature)
}

func TestTypeScript_Imports(t *testing.T) {
	syms := extract(t, TypeScript, "src/widget.ts", tsSample)

	auth := findImport(t, syms, "./auth")
	assert.False(t, auth.External)
	assert.Equal(t, []string{"login", "Session"}, auth.Symbols)

	express := findImport(t, syms, "express")
	assert.True(t, express.External)
	assert.Equal(t, []string{"express"}, express.Symbols)
}

func TestTypeScript_ClassesAndTypes(t *testing.T) {
	syms := extract(t, TypeScript, "src/widget.ts", tsSample)

	require.Len(t, syms.Classes, 1)
	assert.Equal(t, "Button", syms.Classes[0].Name)
	assert.Equal(t, []string{"render", "click"}, syms.Classes[0].Methods)

	assert.Equal(t, map[string]string{
		"Props": "interface",
		"ID":    "type",
		"Color": "enum",
	}, typeKinds(syms))

	require.Len(t, syms.Types, 3)
	props := syms.Types[0]
	assert.Equal(t, 15, props.StartLine)
	assert.Equal(t, 17, props.EndLine)
}

func TestTypeScript_Exports(t *testing.T) {
	syms := extract(t, TypeScript, "src/widget.ts", tsSample)

	assert.ElementsMatch(t, []string{"greet", "Button", "Props", "ID"}, exportNames(syms))
	// unexported declarations never leak
	assert.NotContains(t, exportNames(syms), "double")
	assert.NotContains(t, exportNames(syms), "Color")
}

func TestTypeScript_NestedArrowIgnored(t *testing.T) {
	syms := extract(t, TypeScript, "src/widget.ts", `
function outer() {
  const inner = () => 1;
}
`)
	assert.Equal(t, []string{"outer"}, functionNames(syms))
}

func TestTypeScript_TSXGrammar(t *testing.T) {
	syms := extract(t, TypeScript, "src/App.tsx", `
export function App(): JSX.Element {
  return <div>hello</div>;
}
`)
	app := findFunction(t, syms, "App")
	assert.Equal(t, "App(): JSX.Element", app.Signature)
	assert.Contains(t, exportNames(syms), "App")
}

func TestTypeScript_ExportClause(t *testing.T) {
	syms := extract(t, TypeScript, "src/index.ts", `
const a = 1;
const b = 2;
export { a, b };
`)
	assert.ElementsMatch(t, []string{"a", "b"}, exportNames(syms))
}
