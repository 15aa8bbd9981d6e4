package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/tcc-runtime/tcc"
)

// Profile is a TOML build profile:
//
//	output = "memory"
//	options = "-Wall"
//	include_paths = ["./include"]
//	sys_include_paths = ["/vfs/headers"]
//	library_paths = ["/usr/lib"]
//	libraries = ["m"]
//
//	[defines]
//	VERSION = "3"
//	TRACE = ""
type Profile struct {
	IncludePaths    []string          `toml:"include_paths"`
	SysIncludePaths []string          `toml:"sys_include_paths"`
	LibraryPaths    []string          `toml:"library_paths"`
	Libraries       []string          `toml:"libraries"`
	Defines         map[string]string `toml:"defines"`
	Options         string            `toml:"options"`
	Output          string            `toml:"output"`
}

// buildProfile loads the optional TOML file and layers the command-line
// repeatables on top; flags win by coming last, matching left-to-right
// compiler convention.
func buildProfile(path string, includes, sysIncludes, libPaths, defines []string) (Profile, error) {
	var p Profile
	if path != "" {
		if _, err := toml.DecodeFile(path, &p); err != nil {
			return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
		}
	}

	p.IncludePaths = append(p.IncludePaths, includes...)
	p.SysIncludePaths = append(p.SysIncludePaths, sysIncludes...)
	p.LibraryPaths = append(p.LibraryPaths, libPaths...)

	if len(defines) > 0 && p.Defines == nil {
		p.Defines = make(map[string]string, len(defines))
	}
	for _, d := range defines {
		name, value, _ := strings.Cut(d, "=")
		p.Defines[name] = value
	}
	return p, nil
}

// apply pushes the profile into a fresh context, in search order.
func (p Profile) apply(ctx *tcc.Context) error {
	if p.Options != "" {
		if err := ctx.SetOptions(p.Options); err != nil {
			return err
		}
	}
	for _, dir := range p.IncludePaths {
		if err := ctx.AddIncludePath(dir); err != nil {
			return err
		}
	}
	for _, dir := range p.SysIncludePaths {
		if err := ctx.AddSysIncludePath(dir); err != nil {
			return err
		}
	}
	for _, dir := range p.LibraryPaths {
		if err := ctx.AddLibraryPath(dir); err != nil {
			return err
		}
	}
	for name, value := range p.Defines {
		if err := ctx.DefineSymbol(name, value); err != nil {
			return err
		}
	}
	for _, lib := range p.Libraries {
		if err := ctx.AddLibrary(lib); err != nil {
			return err
		}
	}
	return nil
}
