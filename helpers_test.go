package timefmt

import "testing"

func testRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepositoryLoader("").Load()
	if err != nil {
		t.Fatalf("load default repository: %v", err)
	}
	return repo
}

func testContext(t *testing.T, locale string) CompileContext {
	t.Helper()
	repo := testRepository(t)
	data, ok := repo.Resolve(locale)
	if !ok {
		t.Fatalf("no locale data for %q", locale)
	}
	return CompileContext{Locale: data, LocaleID: locale, HourCycles: repo.HourCycles()}
}

func mustCompile(t *testing.T, pattern string, ctx CompileContext) Sequence {
	t.Helper()
	seq, err := Compile(pattern, ctx)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", pattern, err)
	}
	return seq
}

func render(t *testing.T, pattern string, ctx CompileContext, v Value) string {
	t.Helper()
	seq := mustCompile(t, pattern, ctx)
	text, err := Aggregate(seq.Execute(v, ctx.Locale, ExecOptions{}))
	if err != nil {
		t.Fatalf("render %q: %v", pattern, err)
	}
	return text
}
