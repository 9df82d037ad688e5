package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/lpx/internal/execshell"
	"github.com/temirov/lpx/internal/printing"
	pathutils "github.com/temirov/lpx/internal/utils/path"
)

const (
	menuKeyPrinter         = "d"
	menuKeyServer          = "h"
	menuKeyPageRanges      = "r"
	menuKeyCopies          = "n"
	menuKeyTitle           = "t"
	menuKeyPrinterOptions  = "e"
	menuKeyFiles           = "f"
	menuKeyPreset          = "a"
	menuKeyClear           = "c"
	menuKeyPrint           = "p"
	menuKeyQuit            = "q"
	menuKeyHelp            = "?"
	optionAssignmentSymbol = "="

	headerLineConstant          = "\nlpx print menu\n"
	rowTemplateConstant         = "  %s) %-18s %s\n"
	actionsLineConstant         = "  a) Apply preset   c) Clear   p) Print   q) Quit\n"
	commandLineTemplateConstant = "Command: %s\n"
	selectionPromptConstant     = "Select: "
	candidateTemplateConstant   = "  %s%d) %s\n"
	describedTemplateConstant   = "  %d) %s - %s\n"
	messageTemplateConstant     = "%s\n"

	groupPromptTemplateConstant       = "%s [number or name, empty to unset]: "
	completionPromptTemplateConstant  = "%s [number, name or free text, empty to unset]: "
	textPromptTemplateConstant        = "%s [empty to unset]: "
	optionPickPromptConstant          = "Printer option [number or key, empty to cancel]: "
	optionValuePromptTemplateConstant = "%s [number or value, empty to unset]: "
	manualOptionPromptConstant        = "Printer option as key=value or name [empty to cancel]: "
	filesPromptConstant               = "Files separated by spaces [empty to print the buffer]: "
	presetPromptConstant              = "Preset [number or name, empty to cancel]: "

	printerTitleConstant        = "Printer"
	serverTitleConstant         = "Server"
	pageRangesTitleConstant     = "Page ranges"
	copiesTitleConstant         = "Copies"
	titleTitleConstant          = "Title"
	printerOptionsTitleConstant = "Printer options"
	filesTitleConstant          = "Files"

	unsetValueConstant          = "(unset)"
	defaultDestinationConstant  = "(default)"
	allPagesConstant            = "(all)"
	singleCopyConstant          = "(1)"
	noneValueConstant           = "(none)"
	bufferFilesTemplateConstant = "(buffer: %s)"
	standardInputFilesConstant  = "(standard input)"
	groupValueTemplateConstant  = "%s  %s %s"
	optionRowTemplateConstant   = "%s (%s) = %s"
	listSeparatorConstant       = ", "
	currentMarkerConstant       = "*"
	blankMarkerConstant         = " "

	unknownSelectionTemplateConstant   = "Unknown selection %q; press ? for help"
	noPrintersMessageConstant          = "No printers discovered; type a printer name."
	noServersMessageConstant           = "No print servers discovered; type a host[:port] or socket path."
	noOptionsMessageConstant           = "No printer-specific options discovered."
	unknownOptionTemplateConstant      = "Unknown printer option %q"
	unknownOptionValueTemplateConstant = "%q is not a value of %s"
	noPresetsMessageConstant           = "No presets configured."
	printAbortedTemplateConstant       = "Cannot print: %v"

	discoveryFailedLogMessageConstant = "printer discovery failed"
	logFieldQueryConstant             = "query"
	logFieldErrorConstant             = "error"
	printersQueryConstant             = "printers"
	serversQueryConstant              = "servers"
	optionsQueryConstant              = "options"
)

// ErrPrintServiceNotConfigured indicates a menu constructed without a print service.
var ErrPrintServiceNotConfigured = errors.New("menu print service not configured")

// PrintService runs print requests.
type PrintService interface {
	Print(executionContext context.Context, request printing.Request) (printing.Result, error)
}

// OptionDiscoverer lists printer-specific options.
type OptionDiscoverer interface {
	Discover(executionContext context.Context, target printing.DiscoveryTarget) ([]printing.DynamicOption, error)
}

// DestinationLister lists printer and server candidates.
type DestinationLister interface {
	Printers(executionContext context.Context, server string) ([]string, error)
	Servers(executionContext context.Context) ([]string, error)
}

// Dependencies describes the collaborators of Menu. Discoverer and
// Destinations are optional; without them the menu asks for free text.
type Dependencies struct {
	Logger       *zap.Logger
	Input        io.Reader
	Output       io.Writer
	Service      PrintService
	Discoverer   OptionDiscoverer
	Destinations DestinationLister
	Presets      printing.PresetCatalog
	Defaults     *printing.DefaultsStore
	// Executable is shown at the start of the previewed command line.
	Executable string
}

// Session carries what one menu run prints. An empty Arguments starts the
// menu from the last-used defaults.
type Session struct {
	Arguments  printing.Arguments
	Files      []string
	Buffer     io.Reader
	BufferName string
	DryRun     bool
}

// Outcome tells how a menu run ended.
type Outcome int

// Menu outcomes.
const (
	OutcomeQuit Outcome = iota
	OutcomePrinted
)

// Menu is the line-oriented interactive print menu.
type Menu struct {
	logger       *zap.Logger
	output       io.Writer
	prompter     *LinePrompter
	service      PrintService
	discoverer   OptionDiscoverer
	destinations DestinationLister
	presets      printing.PresetCatalog
	defaults     *printing.DefaultsStore
	executable   string
}

type menuState struct {
	arguments printing.Arguments
	files     []string
}

// New constructs a Menu.
func New(dependencies Dependencies) (*Menu, error) {
	if dependencies.Service == nil {
		return nil, ErrPrintServiceNotConfigured
	}

	menu := &Menu{
		logger:       dependencies.Logger,
		output:       dependencies.Output,
		service:      dependencies.Service,
		discoverer:   dependencies.Discoverer,
		destinations: dependencies.Destinations,
		presets:      dependencies.Presets,
		defaults:     dependencies.Defaults,
		executable:   strings.TrimSpace(dependencies.Executable),
	}
	if menu.logger == nil {
		menu.logger = zap.NewNop()
	}
	if menu.output == nil {
		menu.output = io.Discard
	}
	if len(menu.executable) == 0 {
		menu.executable = string(execshell.CommandPrint)
	}
	menu.prompter = NewLinePrompter(dependencies.Input, menu.output)
	return menu, nil
}

// Confirm asks a yes/no question on the menu's input.
func (menu *Menu) Confirm(prompt string) (bool, error) {
	return menu.prompter.Confirm(prompt)
}

// Run shows the menu, starting from the last-used defaults, until the user
// prints or quits. End of input quits.
func (menu *Menu) Run(executionContext context.Context, session Session) (Outcome, printing.Result, error) {
	initialArguments := session.Arguments.Clone()
	if initialArguments.IsEmpty() {
		initialArguments = menu.defaults.Load()
	}
	state := &menuState{arguments: initialArguments, files: append([]string{}, session.Files...)}

	for {
		if contextError := executionContext.Err(); contextError != nil {
			return OutcomeQuit, printing.Result{}, contextError
		}

		menu.render(session, state)
		answer, askError := menu.prompter.Ask(selectionPromptConstant)
		if errors.Is(askError, io.EOF) {
			return OutcomeQuit, printing.Result{}, nil
		}
		if askError != nil {
			return OutcomeQuit, printing.Result{}, askError
		}

		key := strings.ToLower(answer)
		var stepError error
		if group, found := groupForMenuKey(key); found {
			stepError = menu.chooseGroup(group, state)
		} else {
			switch key {
			case menuKeyPrinter:
				stepError = menu.choosePrinter(executionContext, state)
			case menuKeyServer:
				stepError = menu.chooseServer(executionContext, state)
			case menuKeyPageRanges:
				stepError = menu.enterFlag(state, printing.FlagPageRanges, pageRangesTitleConstant)
			case menuKeyCopies:
				stepError = menu.enterFlag(state, printing.FlagCopies, copiesTitleConstant)
			case menuKeyTitle:
				stepError = menu.enterFlag(state, printing.FlagTitle, titleTitleConstant)
			case menuKeyPrinterOptions:
				stepError = menu.choosePrinterOption(executionContext, state)
			case menuKeyFiles:
				stepError = menu.enterFiles(state)
			case menuKeyPreset:
				stepError = menu.applyPreset(state)
			case menuKeyClear:
				state.arguments = printing.NewArguments()
			case menuKeyPrint:
				result, printed, printError := menu.print(executionContext, session, state)
				if printError != nil {
					return OutcomeQuit, result, printError
				}
				if printed {
					return OutcomePrinted, result, nil
				}
			case menuKeyQuit:
				return OutcomeQuit, printing.Result{}, nil
			case "", menuKeyHelp:
			default:
				menu.say(fmt.Sprintf(unknownSelectionTemplateConstant, answer))
			}
		}

		if errors.Is(stepError, io.EOF) {
			return OutcomeQuit, printing.Result{}, nil
		}
		if stepError != nil {
			return OutcomeQuit, printing.Result{}, stepError
		}
	}
}

func (menu *Menu) render(session Session, state *menuState) {
	fmt.Fprint(menu.output, headerLineConstant)
	for _, group := range printing.OptionGroups() {
		fmt.Fprintf(menu.output, rowTemplateConstant, group.MenuKey, group.Title, describeGroup(group, state.arguments))
	}
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyPrinter, printerTitleConstant, flagOrPlaceholder(state.arguments, printing.FlagPrinter, defaultDestinationConstant))
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyServer, serverTitleConstant, flagOrPlaceholder(state.arguments, printing.FlagServer, defaultDestinationConstant))
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyPageRanges, pageRangesTitleConstant, flagOrPlaceholder(state.arguments, printing.FlagPageRanges, allPagesConstant))
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyCopies, copiesTitleConstant, flagOrPlaceholder(state.arguments, printing.FlagCopies, singleCopyConstant))
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyTitle, titleTitleConstant, flagOrPlaceholder(state.arguments, printing.FlagTitle, noneValueConstant))
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyPrinterOptions, printerOptionsTitleConstant, describeExtraOptions(state.arguments))
	fmt.Fprintf(menu.output, rowTemplateConstant, menuKeyFiles, filesTitleConstant, describeFiles(session, state.files))
	fmt.Fprint(menu.output, actionsLineConstant)
	fmt.Fprintf(menu.output, commandLineTemplateConstant, printing.FormatCommandLine(menu.executable, append(state.arguments.Tokens(), state.files...)))
}

func (menu *Menu) chooseGroup(group printing.Group, state *menuState) error {
	current, present := group.Current(state.arguments)
	for index, choice := range group.Choices {
		fmt.Fprintf(menu.output, candidateTemplateConstant, marker(present && choice.Value == current.Value), index+1, choice.Label)
	}

	answer, askError := menu.prompter.Ask(fmt.Sprintf(groupPromptTemplateConstant, group.Title))
	if askError != nil {
		return askError
	}
	if len(answer) == 0 {
		state.arguments.RemoveOption(group.Key)
		return nil
	}

	choice, chooseError := resolveChoice(group, answer)
	if chooseError != nil {
		menu.say(chooseError.Error())
		return nil
	}
	return state.arguments.SetOption(choice.Key, choice.Value)
}

// resolveChoice prefers an exact label so "4" pages per sheet is not read as
// the fourth entry, then a 1-based index, then value or prefix.
func resolveChoice(group printing.Group, answer string) (printing.Choice, error) {
	for _, choice := range group.Choices {
		if strings.EqualFold(choice.Label, answer) {
			return choice, nil
		}
	}
	if label, found := candidateAtIndex(answer, group.Labels()); found {
		return group.Choose(label)
	}
	return group.Choose(answer)
}

func (menu *Menu) choosePrinter(executionContext context.Context, state *menuState) error {
	candidates := []string{}
	if menu.destinations != nil {
		server, _ := state.arguments.FlagValue(printing.FlagServer)
		printers, listError := menu.destinations.Printers(executionContext, server)
		if listError != nil {
			menu.logDiscoveryFailure(printersQueryConstant, listError)
		}
		candidates = printers
	}
	if len(candidates) == 0 {
		menu.say(noPrintersMessageConstant)
	}
	return menu.completeFlag(state, printing.FlagPrinter, printerTitleConstant, candidates)
}

func (menu *Menu) chooseServer(executionContext context.Context, state *menuState) error {
	candidates := []string{}
	if menu.destinations != nil {
		servers, listError := menu.destinations.Servers(executionContext)
		if listError != nil {
			menu.logDiscoveryFailure(serversQueryConstant, listError)
		}
		candidates = servers
	}
	if len(candidates) == 0 {
		menu.say(noServersMessageConstant)
	}
	return menu.completeFlag(state, printing.FlagServer, serverTitleConstant, candidates)
}

func (menu *Menu) completeFlag(state *menuState, flag string, title string, candidates []string) error {
	current, _ := state.arguments.FlagValue(flag)
	for index, candidate := range candidates {
		fmt.Fprintf(menu.output, candidateTemplateConstant, marker(candidate == current), index+1, candidate)
	}

	answer, askError := menu.prompter.Ask(fmt.Sprintf(completionPromptTemplateConstant, title))
	if askError != nil {
		return askError
	}
	return state.arguments.SetFlag(flag, Complete(answer, candidates))
}

func (menu *Menu) enterFlag(state *menuState, flag string, title string) error {
	answer, askError := menu.prompter.Ask(fmt.Sprintf(textPromptTemplateConstant, title))
	if askError != nil {
		return askError
	}

	updated := state.arguments.Clone()
	if setError := updated.SetFlag(flag, answer); setError != nil {
		return setError
	}
	if validationError := updated.Validate(); validationError != nil {
		menu.say(validationError.Error())
		return nil
	}
	state.arguments = updated
	return nil
}

func (menu *Menu) choosePrinterOption(executionContext context.Context, state *menuState) error {
	options := []printing.DynamicOption{}
	if menu.discoverer != nil {
		printer, _ := state.arguments.FlagValue(printing.FlagPrinter)
		server, _ := state.arguments.FlagValue(printing.FlagServer)
		discovered, discoveryError := menu.discoverer.Discover(executionContext, printing.DiscoveryTarget{Printer: printer, Server: server})
		if discoveryError != nil {
			menu.logDiscoveryFailure(optionsQueryConstant, discoveryError)
		}
		options = discovered
	}
	if len(options) == 0 {
		menu.say(noOptionsMessageConstant)
		return menu.enterManualOption(state)
	}

	keys := make([]string, 0, len(options))
	for index, option := range options {
		keys = append(keys, option.Key)
		value, present := state.arguments.OptionValue(option.Key)
		if !present {
			value = option.Default
		}
		fmt.Fprintf(menu.output, candidateTemplateConstant, marker(present), index+1, fmt.Sprintf(optionRowTemplateConstant, option.Label, option.Key, value))
	}

	answer, askError := menu.prompter.Ask(optionPickPromptConstant)
	if askError != nil || len(answer) == 0 {
		return askError
	}
	option, found := findDynamicOption(options, Complete(answer, keys))
	if !found {
		menu.say(fmt.Sprintf(unknownOptionTemplateConstant, answer))
		return nil
	}
	return menu.chooseOptionValue(state, option)
}

func (menu *Menu) chooseOptionValue(state *menuState, option printing.DynamicOption) error {
	current, present := state.arguments.OptionValue(option.Key)
	if !present {
		current = option.Default
	}
	for index, value := range option.Values {
		fmt.Fprintf(menu.output, candidateTemplateConstant, marker(value == current), index+1, value)
	}

	answer, askError := menu.prompter.Ask(fmt.Sprintf(optionValuePromptTemplateConstant, option.Label))
	if askError != nil {
		return askError
	}
	if len(answer) == 0 {
		state.arguments.RemoveOption(option.Key)
		return nil
	}

	value := Complete(answer, option.Values)
	for _, candidate := range option.Values {
		if candidate == value {
			return state.arguments.SetOption(option.Key, value)
		}
	}
	menu.say(fmt.Sprintf(unknownOptionValueTemplateConstant, answer, option.Label))
	return nil
}

func (menu *Menu) enterManualOption(state *menuState) error {
	answer, askError := menu.prompter.Ask(manualOptionPromptConstant)
	if askError != nil || len(answer) == 0 {
		return askError
	}

	if setError := state.arguments.SetOptionAssignment(answer); setError != nil {
		menu.say(setError.Error())
	}
	return nil
}

func (menu *Menu) enterFiles(state *menuState) error {
	answer, askError := menu.prompter.Ask(filesPromptConstant)
	if askError != nil {
		return askError
	}
	state.files = strings.Fields(answer)
	return nil
}

func (menu *Menu) applyPreset(state *menuState) error {
	presets := menu.presets.Presets()
	if len(presets) == 0 {
		menu.say(noPresetsMessageConstant)
		return nil
	}

	names := make([]string, 0, len(presets))
	for index, preset := range presets {
		names = append(names, preset.Name)
		fmt.Fprintf(menu.output, describedTemplateConstant, index+1, preset.Name, preset.ParsedArguments().String())
	}

	answer, askError := menu.prompter.Ask(presetPromptConstant)
	if askError != nil || len(answer) == 0 {
		return askError
	}
	preset, lookupError := menu.presets.Lookup(Complete(answer, names))
	if lookupError != nil {
		menu.say(lookupError.Error())
		return nil
	}
	state.arguments = preset.ParsedArguments()
	return nil
}

func (menu *Menu) print(executionContext context.Context, session Session, state *menuState) (printing.Result, bool, error) {
	result, printError := menu.service.Print(executionContext, printing.Request{
		Arguments:  state.arguments.Clone(),
		Files:      state.files,
		Buffer:     session.Buffer,
		BufferName: session.BufferName,
		DryRun:     session.DryRun,
	})
	if printError != nil {
		if recoverablePrintError(printError) {
			menu.say(fmt.Sprintf(printAbortedTemplateConstant, printError))
			return printing.Result{}, false, nil
		}
		return result, false, printError
	}
	return result, true, nil
}

func recoverablePrintError(printError error) bool {
	for _, recoverable := range []error{
		printing.ErrNothingToPrint,
		printing.ErrInvalidCopies,
		printing.ErrInvalidPageRanges,
		pathutils.ErrFileOperandInvalid,
	} {
		if errors.Is(printError, recoverable) {
			return true
		}
	}
	return false
}

func (menu *Menu) say(message string) {
	fmt.Fprintf(menu.output, messageTemplateConstant, message)
}

func (menu *Menu) logDiscoveryFailure(query string, discoveryError error) {
	menu.logger.Debug(discoveryFailedLogMessageConstant, zap.String(logFieldQueryConstant, query), zap.String(logFieldErrorConstant, discoveryError.Error()))
}

func groupForMenuKey(key string) (printing.Group, bool) {
	for _, group := range printing.OptionGroups() {
		if group.MenuKey == key {
			return group, true
		}
	}
	return printing.Group{}, false
}

func findDynamicOption(options []printing.DynamicOption, keyOrLabel string) (printing.DynamicOption, bool) {
	for _, option := range options {
		if strings.EqualFold(option.Key, keyOrLabel) || strings.EqualFold(option.Label, keyOrLabel) {
			return option, true
		}
	}
	return printing.DynamicOption{}, false
}

func describeGroup(group printing.Group, arguments printing.Arguments) string {
	current, present := group.Current(arguments)
	if !present {
		return unsetValueConstant
	}
	label := current.Label
	if len(label) == 0 {
		label = current.Value
	}
	fragment := current.Fragment()
	return fmt.Sprintf(groupValueTemplateConstant, label, fragment[0], fragment[1])
}

// describeExtraOptions lists -o pairs that no static group covers.
func describeExtraOptions(arguments printing.Arguments) string {
	extras := []string{}
	for _, option := range arguments.Options() {
		if _, covered := printing.LookupGroup(option.Key); covered {
			continue
		}
		if len(option.Value) == 0 {
			extras = append(extras, option.Key)
			continue
		}
		extras = append(extras, option.Key+optionAssignmentSymbol+option.Value)
	}
	if len(extras) == 0 {
		return noneValueConstant
	}
	return strings.Join(extras, listSeparatorConstant)
}

func describeFiles(session Session, files []string) string {
	if len(files) > 0 {
		names := make([]string, 0, len(files))
		for _, file := range files {
			names = append(names, filepath.Base(file))
		}
		return strings.Join(names, listSeparatorConstant)
	}
	if session.Buffer == nil {
		return noneValueConstant
	}
	if trimmedName := strings.TrimSpace(session.BufferName); len(trimmedName) > 0 {
		return fmt.Sprintf(bufferFilesTemplateConstant, trimmedName)
	}
	return standardInputFilesConstant
}

func flagOrPlaceholder(arguments printing.Arguments, flag string, placeholder string) string {
	if value, present := arguments.FlagValue(flag); present {
		return value
	}
	return placeholder
}

func marker(current bool) string {
	if current {
		return currentMarkerConstant
	}
	return blankMarkerConstant
}
