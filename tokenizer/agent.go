package tokenizer

// AgentTokens exposes the reserved ids of a stock configuration's agent
// markers, grouped by category. Ids are assigned in declaration order from
// a fixed base, so they are stable for every tokenizer built from the same
// named configuration.
type AgentTokens struct {
	Conversation ConversationTokens
	Thinking     ThinkingTokens
	React        ReactTokens
	Tools        ToolTokens
	Code         CodeTokens
	Retrieval    RetrievalTokens
	Memory       MemoryTokens
	Control      ControlTokens
	Multimodal   MultimodalTokens
	Document     DocumentTokens
}

type ConversationTokens struct {
	System, User, Assistant, ImStart, ImEnd int32
}

type ThinkingTokens struct {
	Think, ThinkEnd int32
}

type ReactTokens struct {
	Plan, PlanEnd, Step, StepEnd, Act, ActEnd, Observe, ObserveEnd int32
}

type ToolTokens struct {
	Function, FunctionEnd, Result, ResultEnd, Error, ErrorEnd int32
}

type CodeTokens struct {
	Code, CodeEnd, Output, OutputEnd, Lang, LangEnd int32
}

type RetrievalTokens struct {
	Context, ContextEnd, Quote, QuoteEnd, Cite, CiteEnd, Source, SourceEnd int32
}

type MemoryTokens struct {
	Memory, MemoryEnd, Recall, RecallEnd int32
}

type ControlTokens struct {
	Pad, Stop, Sep int32
}

type MultimodalTokens struct {
	Image, ImageEnd, Audio, AudioEnd, Video, VideoEnd int32
}

type DocumentTokens struct {
	Title, TitleEnd, Section, SectionEnd, Summary, SummaryEnd int32
}

// newAgentTokens assigns sequential ids from base and returns both the
// typed lookup structure and the marker table feeding NewSpecialTokens.
// Marker strings take the form <|name|>, end markers <|/name|>.
func newAgentTokens(base int32) (AgentTokens, []SpecialToken) {
	var at AgentTokens
	var table []SpecialToken

	id := base
	open := func(name string, dst *int32) {
		*dst = id
		table = append(table, SpecialToken{Value: "<|" + name + "|>", ID: id})
		id++
	}
	paired := func(name string, start, end *int32) {
		open(name, start)
		*end = id
		table = append(table, SpecialToken{Value: "<|/" + name + "|>", ID: id})
		id++
	}

	open("system", &at.Conversation.System)
	open("user", &at.Conversation.User)
	open("assistant", &at.Conversation.Assistant)
	open("im_start", &at.Conversation.ImStart)
	open("im_end", &at.Conversation.ImEnd)

	paired("think", &at.Thinking.Think, &at.Thinking.ThinkEnd)

	paired("plan", &at.React.Plan, &at.React.PlanEnd)
	paired("step", &at.React.Step, &at.React.StepEnd)
	paired("act", &at.React.Act, &at.React.ActEnd)
	paired("observe", &at.React.Observe, &at.React.ObserveEnd)

	paired("function", &at.Tools.Function, &at.Tools.FunctionEnd)
	paired("result", &at.Tools.Result, &at.Tools.ResultEnd)
	paired("error", &at.Tools.Error, &at.Tools.ErrorEnd)

	paired("code", &at.Code.Code, &at.Code.CodeEnd)
	paired("output", &at.Code.Output, &at.Code.OutputEnd)
	paired("lang", &at.Code.Lang, &at.Code.LangEnd)

	paired("context", &at.Retrieval.Context, &at.Retrieval.ContextEnd)
	paired("quote", &at.Retrieval.Quote, &at.Retrieval.QuoteEnd)
	paired("cite", &at.Retrieval.Cite, &at.Retrieval.CiteEnd)
	paired("source", &at.Retrieval.Source, &at.Retrieval.SourceEnd)

	paired("memory", &at.Memory.Memory, &at.Memory.MemoryEnd)
	paired("recall", &at.Memory.Recall, &at.Memory.RecallEnd)

	open("pad", &at.Control.Pad)
	open("stop", &at.Control.Stop)
	open("sep", &at.Control.Sep)

	paired("image", &at.Multimodal.Image, &at.Multimodal.ImageEnd)
	paired("audio", &at.Multimodal.Audio, &at.Multimodal.AudioEnd)
	paired("video", &at.Multimodal.Video, &at.Multimodal.VideoEnd)

	paired("title", &at.Document.Title, &at.Document.TitleEnd)
	paired("section", &at.Document.Section, &at.Document.SectionEnd)
	paired("summary", &at.Document.Summary, &at.Document.SummaryEnd)

	return at, table
}
