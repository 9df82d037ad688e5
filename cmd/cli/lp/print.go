package lp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lpx/internal/execshell"
	"github.com/temirov/lpx/internal/menu"
	"github.com/temirov/lpx/internal/printing"
	"github.com/temirov/lpx/internal/utils"
	flagutils "github.com/temirov/lpx/internal/utils/flags"
	pathutils "github.com/temirov/lpx/internal/utils/path"
)

const (
	printCommandUseConstant              = "print [files...]"
	printCommandShortDescriptionConstant = "Print files or standard input with lp"
	printCommandLongDescriptionConstant  = "print assembles an lp command line from the selected options and runs it. Without files, the --buffer file or standard input is printed. With --interactive, a menu edits the options before printing; it is also shown when no files are given and standard input is a terminal."
	pagesFlagNameConstant                = "pages"
	pagesFlagShorthandConstant           = "P"
	pagesFlagUsageConstant               = "Page ranges such as 1,3-5,8-"
	copiesFlagNameConstant               = "copies"
	copiesFlagShorthandConstant          = "n"
	copiesFlagUsageConstant              = "Number of copies"
	titleFlagNameConstant                = "title"
	titleFlagShorthandConstant           = "t"
	titleFlagUsageConstant               = "Job title"
	optionFlagNameConstant               = "option"
	optionFlagShorthandConstant          = "o"
	optionFlagUsageConstant              = "Additional lp option as key=value or a bare name such as fit-to-page (repeatable)"
	presetFlagNameConstant               = "preset"
	presetFlagUsageConstant              = "Start from a named preset"
	interactiveFlagNameConstant          = "interactive"
	interactiveFlagShorthandConstant     = "i"
	interactiveFlagUsageConstant         = "Edit the options in a menu before printing"
	bufferFlagNameConstant               = "buffer"
	bufferFlagUsageConstant              = "File streamed to lp instead of standard input when no files are given"
	groupFlagUsageTemplateConstant       = "%s (-o %s=...)"
	printAnotherPromptConstant           = "Print another? [y/N] "
	bufferOpenErrorTemplateConstant      = "unable to open buffer %s: %w"
	optionFlagErrorTemplateConstant      = "invalid --option value: %w"
	groupFlagErrorTemplateConstant       = "invalid --%s value: %w"
	presetErrorTemplateConstant          = "unable to apply preset: %w"
	menuFinishedMessageConstant          = "print menu finished"
	logFieldPrintedConstant              = "printed"
)

// PrintCommandBuilder assembles the print command.
type PrintCommandBuilder struct {
	CommandDependencies
}

type printFlagValues struct {
	groupChoices map[string]*string
	destination  *flagutils.DestinationFlagValues
	pages        string
	copies       string
	title        string
	options      []string
	preset       string
	interactive  bool
	buffer       string
}

// Build constructs the print command.
func (builder *PrintCommandBuilder) Build() (*cobra.Command, error) {
	values := &printFlagValues{groupChoices: map[string]*string{}}

	command := &cobra.Command{
		Use:   printCommandUseConstant,
		Short: printCommandShortDescriptionConstant,
		Long:  printCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, values)
		},
	}

	flagSet := command.Flags()
	for _, group := range printing.OptionGroups() {
		target := new(string)
		values.groupChoices[group.Name] = target
		flagutils.AddChoiceFlag(flagSet, target, group.Name, "", group.Labels(), fmt.Sprintf(groupFlagUsageTemplateConstant, group.Title, group.Key))
	}
	values.destination = flagutils.BindDestinationFlags(command, flagutils.DestinationFlagValues{}, flagutils.DefaultDestinationFlagDefinitions())
	flagSet.StringVarP(&values.pages, pagesFlagNameConstant, pagesFlagShorthandConstant, "", pagesFlagUsageConstant)
	flagSet.StringVarP(&values.copies, copiesFlagNameConstant, copiesFlagShorthandConstant, "", copiesFlagUsageConstant)
	flagSet.StringVarP(&values.title, titleFlagNameConstant, titleFlagShorthandConstant, "", titleFlagUsageConstant)
	flagSet.StringArrayVarP(&values.options, optionFlagNameConstant, optionFlagShorthandConstant, nil, optionFlagUsageConstant)
	flagSet.StringVar(&values.preset, presetFlagNameConstant, "", presetFlagUsageConstant)
	flagutils.AddToggleFlag(flagSet, &values.interactive, interactiveFlagNameConstant, interactiveFlagShorthandConstant, false, interactiveFlagUsageConstant)
	flagSet.StringVar(&values.buffer, bufferFlagNameConstant, "", bufferFlagUsageConstant)

	return command, nil
}

func (builder *PrintCommandBuilder) run(command *cobra.Command, arguments []string, values *printFlagValues) error {
	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()

	executor, executorError := builder.resolveExecutor(logger, configuration)
	if executorError != nil {
		return executorError
	}
	defaultsStore, defaultsError := builder.resolveDefaultsStore(configuration)
	if defaultsError != nil {
		return defaultsError
	}
	presets, presetsError := builder.loadPresets(command, configuration)
	if presetsError != nil {
		return presetsError
	}

	printArguments, argumentsError := values.buildArguments(command, defaultsStore.Load(), presets)
	if argumentsError != nil {
		return argumentsError
	}

	service, serviceError := printing.NewService(printing.ServiceDependencies{
		Logger:       logger,
		Executor:     executor,
		FileResolver: pathutils.NewFileOperandResolver(nil, nil),
		Reporter:     builder.statusReporter(command, logger),
		Defaults:     defaultsStore,
		DryRunOutput: command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	dryRun := resolveDryRun(command)
	interactive := values.interactive
	if !command.Flags().Changed(interactiveFlagNameConstant) {
		interactive = len(arguments) == 0 && len(strings.TrimSpace(values.buffer)) == 0 && builder.isTerminal(command.InOrStdin())
	}

	if !interactive {
		return builder.printOnce(command, service, printing.Request{Arguments: printArguments, Files: arguments, DryRun: dryRun}, values.buffer)
	}

	discoverer, discovererError := printing.NewOptionDiscoverer(executor, configuration.QueryTimeout)
	if discovererError != nil {
		return discovererError
	}
	destinations, destinationsError := printing.NewDestinationCatalog(executor, configuration.Servers, configuration.QueryTimeout)
	if destinationsError != nil {
		return destinationsError
	}

	printMenu, menuError := menu.New(menu.Dependencies{
		Logger:       logger,
		Input:        command.InOrStdin(),
		Output:       command.OutOrStdout(),
		Service:      service,
		Discoverer:   discoverer,
		Destinations: destinations,
		Presets:      presets,
		Defaults:     defaultsStore,
		Executable:   executor.ResolveExecutable(execshell.CommandPrint),
	})
	if menuError != nil {
		return menuError
	}

	return builder.runMenu(command, printMenu, menu.Session{Arguments: printArguments, Files: arguments, DryRun: dryRun}, values.buffer, logger)
}

// printOnce prints without the menu. With no file operands the --buffer file,
// or standard input when it is not set, is streamed to lp.
func (builder *PrintCommandBuilder) printOnce(command *cobra.Command, service *printing.Service, request printing.Request, bufferPath string) error {
	if len(request.Files) > 0 {
		_, printError := service.Print(command.Context(), request)
		return printError
	}

	buffer, bufferName, closeBuffer, bufferError := openBuffer(bufferPath)
	if bufferError != nil {
		return bufferError
	}
	defer closeBuffer()

	request.Buffer = buffer
	request.BufferName = bufferName
	if request.Buffer == nil {
		request.Buffer = command.InOrStdin()
	}
	_, printError := service.Print(command.Context(), request)
	return printError
}

// runMenu shows the menu until the user quits or declines to print another
// job. Later rounds start from the recorded defaults and reopen the buffer.
func (builder *PrintCommandBuilder) runMenu(command *cobra.Command, printMenu *menu.Menu, session menu.Session, bufferPath string, logger *zap.Logger) error {
	for {
		buffer, bufferName, closeBuffer, bufferError := openBuffer(bufferPath)
		if bufferError != nil {
			return bufferError
		}
		session.Buffer = buffer
		session.BufferName = bufferName

		outcome, _, runError := printMenu.Run(command.Context(), session)
		closeBuffer()
		if runError != nil {
			return runError
		}

		printed := outcome == menu.OutcomePrinted
		logger.Debug(menuFinishedMessageConstant, zap.Bool(logFieldPrintedConstant, printed))
		if !printed {
			return nil
		}

		another, confirmError := printMenu.Confirm(printAnotherPromptConstant)
		if confirmError != nil {
			return confirmError
		}
		if !another {
			return nil
		}
		session.Arguments = printing.NewArguments()
	}
}

func (values *printFlagValues) buildArguments(command *cobra.Command, defaults printing.Arguments, presets printing.PresetCatalog) (printing.Arguments, error) {
	arguments := defaults.Clone()
	if presetName := strings.TrimSpace(values.preset); len(presetName) > 0 {
		preset, lookupError := presets.Lookup(presetName)
		if lookupError != nil {
			return printing.Arguments{}, fmt.Errorf(presetErrorTemplateConstant, lookupError)
		}
		arguments = preset.ParsedArguments()
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagutils.PrinterFlagName) {
		if setError := arguments.SetFlag(printing.FlagPrinter, values.destination.Printer); setError != nil {
			return printing.Arguments{}, setError
		}
	}
	if flagSet.Changed(flagutils.ServerFlagName) {
		if setError := arguments.SetFlag(printing.FlagServer, values.destination.Server); setError != nil {
			return printing.Arguments{}, setError
		}
	}

	for _, group := range printing.OptionGroups() {
		selectedLabel := strings.TrimSpace(*values.groupChoices[group.Name])
		if len(selectedLabel) == 0 {
			continue
		}
		choice, chooseError := group.Choose(selectedLabel)
		if chooseError != nil {
			return printing.Arguments{}, fmt.Errorf(groupFlagErrorTemplateConstant, group.Name, chooseError)
		}
		if setError := arguments.SetOption(choice.Key, choice.Value); setError != nil {
			return printing.Arguments{}, setError
		}
	}

	for _, binding := range []struct {
		flagName string
		lpFlag   string
		value    string
	}{
		{flagName: pagesFlagNameConstant, lpFlag: printing.FlagPageRanges, value: values.pages},
		{flagName: copiesFlagNameConstant, lpFlag: printing.FlagCopies, value: values.copies},
		{flagName: titleFlagNameConstant, lpFlag: printing.FlagTitle, value: values.title},
	} {
		if !flagSet.Changed(binding.flagName) {
			continue
		}
		if setError := arguments.SetFlag(binding.lpFlag, binding.value); setError != nil {
			return printing.Arguments{}, setError
		}
	}

	for _, option := range values.options {
		parsedOption, parseError := printing.ParseArguments([]string{printing.OptionFlag, option})
		if parseError != nil {
			return printing.Arguments{}, fmt.Errorf(optionFlagErrorTemplateConstant, parseError)
		}
		arguments.Merge(parsedOption)
	}

	return arguments, nil
}

func resolveDryRun(command *cobra.Command) bool {
	if executionFlags, available := utils.NewCommandContextAccessor().ExecutionFlags(command.Context()); available && executionFlags.DryRunSet {
		return executionFlags.DryRun
	}
	definitions := flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Enabled: true},
	}
	return flagutils.ReadExecutionFlags(command, definitions).DryRun
}

func openBuffer(bufferPath string) (io.Reader, string, func(), error) {
	trimmedPath := strings.TrimSpace(bufferPath)
	if len(trimmedPath) == 0 {
		return nil, "", func() {}, nil
	}

	expandedPath := pathutils.NewHomeExpander().Expand(trimmedPath)
	bufferFile, openError := os.Open(expandedPath)
	if openError != nil {
		return nil, "", func() {}, fmt.Errorf(bufferOpenErrorTemplateConstant, expandedPath, openError)
	}
	return bufferFile, filepath.Base(expandedPath), func() { _ = bufferFile.Close() }, nil
}
