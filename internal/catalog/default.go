package catalog

// Interest areas the default questionnaire maps onto.
const (
	AreaTechnology    = "Tecnologia e Computação"
	AreaExactSciences = "Ciências Exatas"
	AreaSports        = "Esportes e Atividades Físicas"
	AreaArts          = "Artes e Cultura"
	AreaLiterature    = "Literatura e Linguagem"
	AreaLifeSciences  = "Ciências Biológicas e Saúde"
	AreaHumanities    = "Ciências Humanas e Sociais"
	AreaBusiness      = "Negócios e Empreendedorismo"
	AreaCommunication = "Comunicação Profissional"
)

// DefaultHobbyQuestionID is the free-time question; areas supported only
// by it may be discounted as casual interest.
const DefaultHobbyQuestionID = 1

// Default returns the canonical five-question interest questionnaire.
// Option weights grow with question importance (free time 1.0, internet
// content 0.8, group role 0.9, subjects 1.1, profession 1.2).
func Default() *Catalog {
	c, err := New(defaultQuestions(), DefaultHobbyQuestionID)
	if err != nil {
		// The built-in catalog is validated by tests; this cannot happen
		// at runtime.
		panic(err)
	}
	return c
}

func defaultQuestions() []Question {
	return []Question{
		{
			ID:     1,
			Prompt: "Quais das seguintes atividades você mais gosta de fazer no seu tempo livre?",
			Options: map[string]Option{
				"1": {Text: "Programar ou criar conteúdo digital", Area: AreaTechnology, Weight: 1.0},
				"2": {Text: "Resolver problemas matemáticos ou científicos", Area: AreaExactSciences, Weight: 1.0},
				"3": {Text: "Praticar esportes ou atividades físicas", Area: AreaSports, Weight: 1.0},
				"4": {Text: "Desenhar, pintar ou criar obras visuais", Area: AreaArts, Weight: 1.0},
				"5": {Text: "Ler livros, escrever ou aprender idiomas", Area: AreaLiterature, Weight: 1.0},
				"6": {Text: "Cuidar de plantas, animais ou do meio ambiente", Area: AreaLifeSciences, Weight: 1.0},
				"7": {Text: "Debater, analisar sociedade ou política", Area: AreaHumanities, Weight: 1.0},
				"8": {Text: "Planejar negócios ou gerenciar recursos", Area: AreaBusiness, Weight: 1.0},
				"9": {Text: "Aprimorar a comunicação e expressão verbal", Area: AreaCommunication, Weight: 1.0},
			},
		},
		{
			ID:     2,
			Prompt: "Qual tipo de conteúdo você mais gosta de consumir na internet?",
			Options: map[string]Option{
				"1": {Text: "Tutoriais de tecnologia, jogos ou programação", Area: AreaTechnology, Weight: 0.8},
				"2": {Text: "Vídeos educativos sobre ciências exatas", Area: AreaExactSciences, Weight: 0.8},
				"3": {Text: "Conteúdos sobre esportes e saúde física", Area: AreaSports, Weight: 0.8},
				"4": {Text: "Canais de arte, música ou cultura", Area: AreaArts, Weight: 0.8},
				"5": {Text: "Blogs literários ou canais sobre idiomas", Area: AreaLiterature, Weight: 0.8},
				"6": {Text: "Canais sobre biologia, saúde ou natureza", Area: AreaLifeSciences, Weight: 0.8},
				"7": {Text: "Conteúdos de história, filosofia ou sociologia", Area: AreaHumanities, Weight: 0.8},
				"8": {Text: "Vídeos sobre empreendedorismo e negócios", Area: AreaBusiness, Weight: 0.8},
				"9": {Text: "Podcasts, debates ou conteúdos de comunicação", Area: AreaCommunication, Weight: 0.8},
			},
		},
		{
			ID:     3,
			Prompt: "Em um projeto em grupo, que papel você geralmente prefere assumir?",
			Options: map[string]Option{
				"1": {Text: "Responsável pela parte técnica/tecnológica", Area: AreaTechnology, Weight: 0.9},
				"2": {Text: "Resolver problemas lógicos e fazer cálculos", Area: AreaExactSciences, Weight: 0.9},
				"3": {Text: "Organizar atividades práticas e dinâmicas", Area: AreaSports, Weight: 0.9},
				"4": {Text: "Cuidar do design ou aspecto visual", Area: AreaArts, Weight: 0.9},
				"5": {Text: "Redação e revisão textual", Area: AreaLiterature, Weight: 0.9},
				"6": {Text: "Pesquisar e cuidar do bem-estar do grupo", Area: AreaLifeSciences, Weight: 0.9},
				"7": {Text: "Contextualizar, analisar impactos sociais", Area: AreaHumanities, Weight: 0.9},
				"8": {Text: "Coordenar, organizar recursos e prazos", Area: AreaBusiness, Weight: 0.9},
				"9": {Text: "Apresentar o trabalho e comunicar ideias", Area: AreaCommunication, Weight: 0.9},
			},
		},
		{
			ID:     4,
			Prompt: "Qual dessas matérias ou temas você mais gostaria de se aprofundar?",
			Options: map[string]Option{
				"1": {Text: "Programação, robótica ou informática", Area: AreaTechnology, Weight: 1.1},
				"2": {Text: "Matemática, física ou química", Area: AreaExactSciences, Weight: 1.1},
				"3": {Text: "Educação física, técnicas esportivas", Area: AreaSports, Weight: 1.1},
				"4": {Text: "Artes visuais, música ou expressão cultural", Area: AreaArts, Weight: 1.1},
				"5": {Text: "Literatura, redação ou idiomas", Area: AreaLiterature, Weight: 1.1},
				"6": {Text: "Biologia, meio ambiente ou saúde", Area: AreaLifeSciences, Weight: 1.1},
				"7": {Text: "História, filosofia, sociologia ou direito", Area: AreaHumanities, Weight: 1.1},
				"8": {Text: "Administração, economia ou marketing", Area: AreaBusiness, Weight: 1.1},
				"9": {Text: "Jornalismo, oratória ou comunicação", Area: AreaCommunication, Weight: 1.1},
			},
		},
		{
			ID:     5,
			Prompt: "Se pudesse escolher uma profissão agora, qual dessas áreas mais te atrairia?",
			Options: map[string]Option{
				"1": {Text: "Desenvolvedor de software, analista de TI", Area: AreaTechnology, Weight: 1.2},
				"2": {Text: "Engenheiro, físico ou matemático", Area: AreaExactSciences, Weight: 1.2},
				"3": {Text: "Atleta, personal trainer ou educador físico", Area: AreaSports, Weight: 1.2},
				"4": {Text: "Artista, músico, designer ou produtor cultural", Area: AreaArts, Weight: 1.2},
				"5": {Text: "Escritor, tradutor ou professor de idiomas", Area: AreaLiterature, Weight: 1.2},
				"6": {Text: "Médico, biólogo, veterinário ou nutricionista", Area: AreaLifeSciences, Weight: 1.2},
				"7": {Text: "Professor, advogado, historiador ou psicólogo", Area: AreaHumanities, Weight: 1.2},
				"8": {Text: "Empresário, administrador ou consultor", Area: AreaBusiness, Weight: 1.2},
				"9": {Text: "Jornalista, relações públicas ou influenciador", Area: AreaCommunication, Weight: 1.2},
			},
		},
	}
}
