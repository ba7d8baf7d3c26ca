// internal/service/lexicon/tables.go

package lexicon

var (
	defaultStopwords = newTermSet(
		"a", "o", "os", "as", "de", "da", "do", "das", "dos", "e", "é", "em",
		"no", "na", "nos", "nas", "um", "uma", "uns", "umas", "para", "por",
		"com", "sem", "ao", "à", "aos", "às", "que", "se", "ser", "tem", "têm",
		"ter", "foi", "era", "são", "está", "estão", "como", "mais", "menos",
		"muito", "muita", "muitos", "muitas", "pouco", "pouca", "poucos",
		"poucas", "já", "também", "entre", "até", "quando", "onde", "porque",
		"pois", "per", "sobre", "sob", "lhe", "lhes", "me", "te", "vai",
		"depois", "antes", "agora", "hoje", "ontem", "amanhã", "pra", "pro",
		"q", "pq", "vc", "vcs", "ok", "bom", "boa", "ruim",
		// folded forms of the accented entries above
		"sao", "esta", "estao", "ja", "tambem", "ate", "amanha",
	)

	defaultPositive = WeightedTerms{
		"empatia":         0.8,
		"respeito":        0.8,
		"ajuda":           0.6,
		"apoio":           0.6,
		"acolhimento":     0.75,
		"rapido":          0.65,
		"rapida":          0.65,
		"agil":            0.65,
		"agilidade":       0.7,
		"clareza":         0.65,
		"claro":           0.6,
		"organizado":      0.65,
		"organizada":      0.65,
		"disponivel":      0.6,
		"disponibilidade": 0.6,
		"atencioso":       0.7,
		"atenciosa":       0.7,
		"compreensivo":    0.65,
		"bem explicado":   0.7,
		"bom atendimento": 0.7,
		"escuta":          0.6,
		"cuidado":         0.7,
	}

	defaultNegativeStrong = WeightedTerms{
		"preconceito":   -0.85,
		"racismo":       -0.9,
		"discriminacao": -0.85,
		"discriminação": -0.85,
		"assédio":       -0.9,
		"assedio":       -0.9,
		"violencia":     -0.9,
		"violência":     -0.9,
	}

	defaultNegativeModerate = WeightedTerms{
		"problema":         -0.8,
		"demora":           -0.6,
		"demorado":         -0.6,
		"demorada":         -0.6,
		"lento":            -0.6,
		"lenta":            -0.6,
		"atraso":           -0.65,
		"atrasos":          -0.65,
		"descaso":          -0.7,
		"falha":            -0.65,
		"erro":             -0.65,
		"desorganizado":    -0.6,
		"desorganizada":    -0.6,
		"lotado":           -0.6,
		"barulho":          -0.6,
		"inseguranca":      -0.7,
		"falta de retorno": -0.75,
		"sem resposta":     -0.7,
		"falta":            -0.5,
		"cancelar":         -0.5,
		"trancar":          -0.55,
		"abandono":         -0.65,
		"sair":             -0.45,
	}

	defaultNeutral = newTermSet(
		"curso", "aulas", "instituicao", "universidade", "turma", "aluno",
		"alunos", "professor", "profa", "coordenacao", "coordenador",
		"coordenadora", "email", "e-mail", "whatsapp", "telefone", "site",
		"portal", "plataforma", "acoes", "politicas", "politica", "medidas",
		"situacao", "caso", "processo", "area", "areas", "sinto", "vejo",
		"considerar", "houver", "acontecer", "usar",
	)

	defaultNegationMarkers = newTermSet("sem", "falta", "falta de", "nao", "não")

	defaultNegativeHints = newTermSet(
		"ruim", "pior", "horrivel", "horrível", "péssimo", "pessimo", "barulho",
		"barulhento", "quebrado", "demora", "lento", "atraso", "sujo", "lotado",
		"problema", "falha", "defeito", "insatisfeito",
	)

	defaultForceNegative = newTermSet(
		"barulho", "barulhento", "barulhenta", "barulhentas", "barulhentos",
		"ruido", "ruídos", "ruidos", "ruidoso", "ruidosa", "pior", "piorar",
		"horrivel", "horrível", "pessimo", "péssimo", "quebrado", "quebrados",
		"lento", "demora", "atraso", "lotado", "sujo", "falha", "falhas",
		"defeito", "defeituoso", "precisa", "precisar", "melhorar", "melhoria",
		"sinalizacao", "sinalização", "padronizar", "padronizacao",
	)

	defaultExcludePositive = newTermSet(
		"precisa", "melhorar", "sinalizacao", "sinalização", "padronizar",
		"padronizacao", "barulho", "barulhento", "barulhentas", "barulhenta",
		"ruido",
	)

	// general polarity words that only feed the compound sentiment score
	defaultSentimentWords = WeightedTerms{
		"otimo":        0.8,
		"excelente":    0.9,
		"bom":          0.5,
		"boa":          0.5,
		"melhor":       0.5,
		"gostei":       0.6,
		"adorei":       0.8,
		"satisfeito":   0.6,
		"obrigado":     0.4,
		"ruim":         -0.6,
		"pior":         -0.7,
		"pessimo":      -0.9,
		"horrivel":     -0.9,
		"quebrado":     -0.6,
		"sujo":         -0.6,
		"defeito":      -0.6,
		"insatisfeito": -0.7,
	}
)
