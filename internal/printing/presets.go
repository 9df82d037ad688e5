package printing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	presetsReadErrorTemplateConstant     = "unable to read presets file %s: %w"
	presetsDecodeErrorTemplateConstant   = "unable to decode presets file: %w"
	presetMissingNameTemplateConstant    = "%w: entry %d has no name"
	presetDuplicateNameTemplateConstant  = "%w: %q is defined more than once"
	presetArgumentsErrorTemplateConstant = "%w: %q: %v"
	presetNotFoundTemplateConstant       = "%w: %q"
	presetAvailableTemplateConstant      = "%w: %q (available: %s)"
	presetNamesSeparatorConstant         = ", "
)

// Preset is a named argument set.
type Preset struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Arguments   []string `yaml:"arguments"`

	parsed Arguments
}

// ParsedArguments returns the preset's arguments.
func (preset Preset) ParsedArguments() Arguments {
	return preset.parsed.Clone()
}

type presetsDocument struct {
	Presets []Preset `yaml:"presets"`
}

// PresetCatalog holds presets in file order.
type PresetCatalog struct {
	presets []Preset
}

// ReadFileFunc matches os.ReadFile.
type ReadFileFunc func(path string) ([]byte, error)

// LoadPresets reads a presets file. An empty path or a missing file yields an empty catalog.
func LoadPresets(readFile ReadFileFunc, path string) (PresetCatalog, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return PresetCatalog{}, nil
	}
	if readFile == nil {
		readFile = os.ReadFile
	}

	content, readError := readFile(trimmedPath)
	if errors.Is(readError, fs.ErrNotExist) {
		return PresetCatalog{}, nil
	}
	if readError != nil {
		return PresetCatalog{}, fmt.Errorf(presetsReadErrorTemplateConstant, trimmedPath, readError)
	}
	return ParsePresets(content)
}

// ParsePresets decodes "presets: [{name, description, arguments}]" YAML.
// Names must be unique and arguments must parse.
func ParsePresets(content []byte) (PresetCatalog, error) {
	var document presetsDocument
	if decodeError := yaml.Unmarshal(content, &document); decodeError != nil {
		return PresetCatalog{}, fmt.Errorf(presetsDecodeErrorTemplateConstant, decodeError)
	}

	seenNames := make(map[string]struct{}, len(document.Presets))
	presets := make([]Preset, 0, len(document.Presets))
	for index, preset := range document.Presets {
		preset.Name = strings.TrimSpace(preset.Name)
		preset.Description = strings.TrimSpace(preset.Description)
		if len(preset.Name) == 0 {
			return PresetCatalog{}, fmt.Errorf(presetMissingNameTemplateConstant, ErrInvalidPreset, index+1)
		}
		normalizedName := strings.ToLower(preset.Name)
		if _, duplicate := seenNames[normalizedName]; duplicate {
			return PresetCatalog{}, fmt.Errorf(presetDuplicateNameTemplateConstant, ErrInvalidPreset, preset.Name)
		}
		seenNames[normalizedName] = struct{}{}

		parsedArguments, parseError := ParseArguments(preset.Arguments)
		if parseError != nil {
			return PresetCatalog{}, fmt.Errorf(presetArgumentsErrorTemplateConstant, ErrInvalidPreset, preset.Name, parseError)
		}
		preset.parsed = parsedArguments
		presets = append(presets, preset)
	}
	return PresetCatalog{presets: presets}, nil
}

// Presets lists presets in file order.
func (catalog PresetCatalog) Presets() []Preset {
	return append([]Preset{}, catalog.presets...)
}

// Names lists preset names sorted alphabetically.
func (catalog PresetCatalog) Names() []string {
	names := make([]string, 0, len(catalog.presets))
	for _, preset := range catalog.presets {
		names = append(names, preset.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a preset by case-insensitive name.
func (catalog PresetCatalog) Lookup(name string) (Preset, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(name))
	for _, preset := range catalog.presets {
		if strings.ToLower(preset.Name) == normalizedName {
			return preset, nil
		}
	}
	names := catalog.Names()
	if len(names) == 0 {
		return Preset{}, fmt.Errorf(presetNotFoundTemplateConstant, ErrPresetNotFound, name)
	}
	return Preset{}, fmt.Errorf(presetAvailableTemplateConstant, ErrPresetNotFound, name, strings.Join(names, presetNamesSeparatorConstant))
}
