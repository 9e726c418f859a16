package categorization

// Category is a top-level expense or income category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`

	keywords []string
}

// Subcategory is a second-level bucket inside a main category.
type Subcategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`

	keywords []string
}

// expenseCategories is the fixed taxonomy used to classify establishment
// names. Order matters: earlier categories win when keywords from more
// than one category appear in the same name. The keyword lists target
// Brazilian merchants (NFC-e/SAT receipts).
var expenseCategories = []Category{
	{
		ID: "moradia", Name: "Moradia", Emoji: "🏠",
		keywords: []string{"imobiliaria", "condominio", "administradora", "predial"},
	},
	{
		ID: "contas_fixas", Name: "Contas fixas", Emoji: "⚡",
		keywords: []string{
			"energia", "eletrica", "cemig", "copel", "light", "sabesp", "cedae",
			"companhia", "saneamento", "agua", "esgoto", "telefonica", "vivo",
			"tim", "claro", "oi", "net", "sky",
		},
	},
	{
		ID: "supermercado", Name: "Supermercado", Emoji: "🛒",
		keywords: []string{
			"supermercado", "mercado", "atacadao", "carrefour", "extra",
			"paes mendonca", "guanabara", "walmart", "assai", "makro", "padaria",
			"acougue", "hortifruti", "quitanda",
		},
	},
	{
		ID: "transporte", Name: "Transporte", Emoji: "🚗",
		keywords: []string{
			"posto", "combustivel", "shell", "ipiranga", "petrobras",
			"br distribuidora", "ale", "auto pecas", "mecanica", "oficina",
			"estacionamento", "uber", "99", "detran",
		},
	},
	{
		ID: "saude", Name: "Saúde", Emoji: "💊",
		keywords: []string{
			"farmacia", "drogaria", "droga", "raia", "sao paulo", "pacheco",
			"drogasil", "ultrafarma", "clinica", "hospital", "laboratorio",
			"medico", "dentista", "odonto", "academia", "smartfit", "bodytech",
		},
	},
	{
		ID: "pessoais", Name: "Pessoais e higiene", Emoji: "👕",
		keywords: []string{
			"salao", "barbearia", "estetica", "cosmetico", "perfumaria",
			"boticario", "natura", "avon", "renner", "riachuelo", "c&a",
			"marisa", "calcados", "sapato",
		},
	},
	{
		ID: "educacao", Name: "Educação", Emoji: "🎓",
		keywords: []string{
			"escola", "colegio", "universidade", "faculdade", "curso",
			"livraria", "papelaria", "saraiva", "cultura",
		},
	},
	{
		ID: "filhos", Name: "Filhos e dependentes", Emoji: "👶",
		keywords: []string{"bebe", "infantil", "crianca", "brinquedo", "ri happy", "pbkids", "fraldas"},
	},
	{
		ID: "financeiras", Name: "Financeiras", Emoji: "💳",
		keywords: []string{
			"banco", "itau", "bradesco", "santander", "caixa", "bb", "nubank",
			"inter", "financeira", "credito", "emprestimo",
		},
	},
	{
		ID: "lazer", Name: "Lazer e bem-estar", Emoji: "🎉",
		keywords: []string{
			"cinema", "teatro", "show", "ingresso", "viagem", "turismo",
			"hotel", "pousada", "parque", "diversao", "netflix", "spotify",
			"presente",
		},
	},
	{
		ID: "pets", Name: "Pets", Emoji: "🐾",
		keywords: []string{
			"pet", "veterinari", "racao", "animal", "banho e tosa", "petshop",
			"petz", "cobasi",
		},
	},
	{
		ID: "outras", Name: "Outras eventuais", Emoji: "💡",
		keywords: nil, // fallback bucket
	},
}

// incomeCategories is served to callers building income pickers; it has
// no keyword matching because incomes do not come from receipts.
var incomeCategories = []Category{
	{ID: "salario", Name: "Salário", Emoji: "💰"},
	{ID: "freelance", Name: "Freelance", Emoji: "💼"},
	{ID: "investimentos", Name: "Investimentos", Emoji: "📈"},
	{ID: "aluguel", Name: "Aluguel recebido", Emoji: "🏘️"},
	{ID: "pensao", Name: "Pensão", Emoji: "👨‍👩‍👧"},
	{ID: "premio", Name: "Prêmios e bônus", Emoji: "🎁"},
	{ID: "vendas", Name: "Vendas", Emoji: "🛍️"},
	{ID: "restituicao", Name: "Restituição", Emoji: "💵"},
	{ID: "outras_receitas", Name: "Outras receitas", Emoji: "💡"},
}

// subcategoryFallback is appended to every table and returned whenever
// nothing else matches.
var subcategoryFallback = Subcategory{ID: "outros", Name: "Outros", Emoji: "💡"}

// subcategoryTables maps a main category ID to its ordered subcategory
// list. Item descriptions are matched against these keyword lists.
var subcategoryTables = map[string][]Subcategory{
	"supermercado": {
		{
			ID: "bebidas_alcoolicas", Name: "Bebidas Alcoólicas", Emoji: "🍺",
			keywords: []string{
				"cerv", "cerveja", "beer", "brahma", "skol", "heineken", "stella",
				"corona", "budweiser", "baden", "eisenbahn", "bohemia",
				"antarctica", "itaipava", "vinho", "wine", "tinto", "branco",
				"rose", "espumante", "champagne", "whisky", "whiskey", "vodka",
				"gin", "rum", "tequila", "cachaca", "caipirinha", "licor",
				"conhaque", "sake", "smirnoff", "absolut", "jack daniels",
			},
		},
		{
			ID: "bebidas_nao_alcoolicas", Name: "Bebidas Não Alcoólicas", Emoji: "🥤",
			keywords: []string{
				"suco", "juice", "refrigerante", "refri", "coca", "pepsi",
				"guarana", "fanta", "sprite", "agua", "mineral", "tonica",
				"energetico", "red bull", "monster", "cha", "mate", "leao",
				"lipton", "nestea", "del valle", "maguary", "kapo", "tang",
				"fresh", "aurora", "sufresh", "tial", "nescafe", "dolca",
			},
		},
		{
			ID: "carnes", Name: "Carnes e Derivados", Emoji: "🥩",
			keywords: []string{
				"carne", "bov", "bovina", "peito", "file", "contra", "costela",
				"picanha", "alcatra", "patinho", "coxao", "lagarto", "miolo",
				"acem", "fraldinha", "bacon", "linguica", "salsicha",
				"hamburguer", "nuggets", "frango", "ave", "coxa", "asa",
				"sobrecoxa", "sassami", "porco", "suino", "lombo", "pernil",
				"bisteca", "peru", "chester", "tender", "peixe", "pescado",
				"tilapia", "salmao", "atum", "sardinha", "merluza", "friboi",
				"seara", "sadia", "perdigao", "marfrig", "swift",
			},
		},
		{
			ID: "laticinios", Name: "Laticínios", Emoji: "🥛",
			keywords: []string{
				"leite", "milk", "integral", "desnatado", "semi", "italac",
				"parmalat", "ninho", "molico", "piracanjuba", "lider", "batavo",
				"nestle", "queijo", "cheese", "mussarela", "prato", "minas",
				"parmesao", "provolone", "gorgonzola", "cheddar", "coalho",
				"frescal", "ricota", "cream cheese", "iogurte", "yogurt",
				"danone", "activia", "vigor", "paulista", "manteiga",
				"margarina", "requeijao", "catupiry", "creme de leite", "nata",
				"chantilly", "condensado", "doce de leite",
			},
		},
		{
			ID: "padaria", Name: "Padaria", Emoji: "🍞",
			keywords: []string{
				"pao", "bread", "frances", "forma", "centeio", "bisnaga",
				"brioche", "hot dog", "ciabatta", "baguete", "bolo", "cake",
				"torta", "croissant", "sonho", "rosca", "bomba", "biscoito",
				"cookie", "bolacha", "wafer", "cream cracker", "maria", "muffin",
				"cupcake", "brownie", "panetone", "chocotone", "wickbold",
				"plusvita", "nutrella", "pullman", "bauducco",
			},
		},
		{
			ID: "frutas_verduras", Name: "Frutas e Verduras", Emoji: "🍎",
			keywords: []string{
				"banana", "maca", "laranja", "uva", "morango", "melancia",
				"melao", "abacaxi", "manga", "pera", "pessego", "kiwi", "limao",
				"tangerina", "mamao", "abacate", "goiaba", "maracuja", "coco",
				"ameixa", "alface", "tomate", "cebola", "batata", "cenoura",
				"abobrinha", "brocolis", "couve", "repolho", "pimentao",
				"berinjela", "chuchu", "mandioca", "inhame", "beterraba",
				"pepino", "rucula", "agriao", "salsa", "cebolinha", "coentro",
				"manjericao", "hortalica", "verdura",
			},
		},
		{
			ID: "mercearia", Name: "Mercearia", Emoji: "🍝",
			keywords: []string{
				"arroz", "rice", "feijao", "bean", "macarrao", "pasta",
				"espaguete", "penne", "parafuso", "renata", "adria", "barilla",
				"oleo", "azeite", "olive", "liza", "soya", "salada", "girassol",
				"acucar", "sugar", "sal", "salt", "farinha", "flour", "fuba",
				"amido", "molho", "sauce", "pesto", "shoyu", "maionese",
				"ketchup", "mostarda", "hellmanns", "heinz", "quero", "elefante",
				"uniao", "cafe", "coffee", "pilao", "tres coracoes",
				"santa clara", "pimpinela", "tea", "chocolate", "achocolatado",
				"nescau", "toddy", "ovomaltine", "cereal", "aveia", "granola",
				"musli", "corn flakes", "sucrilhos",
			},
		},
		{
			ID: "congelados", Name: "Congelados", Emoji: "🧊",
			keywords: []string{
				"congelado", "frozen", "lasanha", "pizza", "empanado", "frita",
				"palito", "almondega", "camarao", "sorvete", "ice cream",
				"picole", "kibon", "rochinha", "acai", "polpa",
				"fruta congelada", "vegetais congelados", "da granja",
			},
		},
		{
			ID: "doces_sobremesas", Name: "Doces e Sobremesas", Emoji: "🍰",
			keywords: []string{
				"choc", "hersheys", "lacta", "garoto", "arcor", "barra",
				"tablete", "bombom", "trufa", "diamante negro", "ouro branco",
				"doce", "candy", "bala", "pirulito", "chiclete", "drops",
				"halls", "mentos", "trident", "fini", "haribo", "pudim",
				"mousse", "gelatina", "sobremesa", "dessert", "geleia",
				"compota", "mel", "honey", "melado", "rapadura", "pacoca",
				"pe de moleque", "goiabada", "marmelada",
			},
		},
		{
			ID: "temperos_condimentos", Name: "Temperos e Condimentos", Emoji: "🧂",
			keywords: []string{
				"tempero", "condimento", "seasoning", "alho", "garlic", "onion",
				"pimenta", "pepper", "cominho", "oregano", "louro", "tomilho",
				"alecrim", "canela", "noz moscada", "cravo", "gengibre",
				"curcuma", "curry", "paprica", "knorr", "sazon", "arisco",
				"maggi", "kitano", "chinsu", "ervas",
			},
		},
		{
			ID: "higiene_limpeza", Name: "Higiene e Limpeza", Emoji: "🧻",
			keywords: []string{
				"sabonete", "soap", "shampoo", "condicionador", "creme",
				"hidratante", "desodorante", "perfume", "colonia", "escova",
				"dente", "fio dental", "enxaguante", "listerine", "oral b",
				"papel higienico", "guard", "neve", "personal", "absorvente",
				"sempre livre", "fralda", "pampers", "huggies", "lenco",
				"toalha", "detergente", "ype", "limpol", "clear", "omo",
				"ariel", "ace", "comfort", "sabao", "agua sanitaria",
				"desinfetante", "limpa", "ajax", "veja", "esponja", "pano",
				"vassoura", "rodo", "balde", "saco lixo",
			},
		},
		{
			ID: "pet", Name: "Pet", Emoji: "🐾",
			keywords: []string{
				"racao", "pet", "cachorro", "dog", "cao", "gato", "cat",
				"felino", "areia", "silica", "granulado", "pipicat", "kelco",
				"petisco", "snack", "bifinho", "osso", "brinquedo", "coleira",
				"guia", "comedouro", "bebedouro", "casinha", "whiskas",
				"pedigree", "royal canin", "premier", "golden", "special dog",
			},
		},
	},
	"transporte": {
		{
			ID: "combustivel", Name: "Combustível", Emoji: "⛽",
			keywords: []string{
				"gasolina", "alcool", "etanol", "diesel", "gnv", "gas", "shell",
				"ipiranga", "petrobras", "br", "ale", "raizen",
			},
		},
		{
			ID: "manutencao", Name: "Manutenção e Reparos", Emoji: "🔧",
			keywords: []string{
				"oficina", "mecanica", "revisao", "troca", "oleo", "filtro",
				"pneu", "balanceamento", "alinhamento", "freio", "bateria",
				"pecas", "auto", "reparo", "conserto",
			},
		},
		{
			ID: "estacionamento", Name: "Estacionamento", Emoji: "🅿️",
			keywords: []string{"estacionamento", "parking", "vaga", "mensalista", "zona azul"},
		},
		{
			ID: "transporte_publico", Name: "Transporte Público", Emoji: "🚌",
			keywords: []string{
				"onibus", "metro", "trem", "bilhete", "passagem",
				"vale transporte", "recarga", "cartao", "bom", "sptrans", "cptm",
			},
		},
		{
			ID: "apps_transporte", Name: "Apps de Transporte", Emoji: "🚗",
			keywords: []string{"uber", "99", "cabify", "corrida", "viagem", "app"},
		},
	},
	"saude": {
		{
			ID: "medicamentos", Name: "Medicamentos", Emoji: "💊",
			keywords: []string{
				"medicamento", "remedio", "farmacia", "drogaria", "comprimido",
				"capsula", "pomada", "creme", "xarope", "generico", "antibiotico",
			},
		},
		{
			ID: "consultas", Name: "Consultas", Emoji: "👨‍⚕️",
			keywords: []string{"consulta", "medico", "doutor", "clinica", "atendimento"},
		},
		{
			ID: "exames", Name: "Exames", Emoji: "🩺",
			keywords: []string{"exame", "laboratorio", "analise", "raio x", "tomografia", "ressonancia"},
		},
		{
			ID: "plano_saude", Name: "Plano de Saúde", Emoji: "🏥",
			keywords: []string{"plano", "unimed", "bradesco saude", "amil", "sulamerica", "convenio"},
		},
		{
			ID: "academia", Name: "Academia", Emoji: "💪",
			keywords: []string{"academia", "gym", "smartfit", "bodytech", "bio ritmo", "fitness"},
		},
	},
	"pessoais": {
		{
			ID: "salao_beleza", Name: "Salão e Beleza", Emoji: "💇",
			keywords: []string{"salao", "cabeleireiro", "barbeiro", "manicure", "pedicure", "estetica"},
		},
		{
			ID: "cosmeticos", Name: "Cosméticos", Emoji: "💄",
			keywords: []string{"cosmetico", "maquiagem", "perfume", "boticario", "natura", "avon"},
		},
		{
			ID: "roupas", Name: "Roupas", Emoji: "👕",
			keywords: []string{"roupa", "camisa", "calca", "vestido", "renner", "riachuelo", "c&a"},
		},
		{
			ID: "calcados", Name: "Calçados", Emoji: "👟",
			keywords: []string{"calcado", "sapato", "tenis", "sandalia", "chinelo", "bota"},
		},
	},
	"educacao": {
		{
			ID: "mensalidade", Name: "Mensalidade", Emoji: "🎓",
			keywords: []string{"mensalidade", "anuidade", "escola", "colegio", "faculdade", "universidade"},
		},
		{
			ID: "material", Name: "Material Escolar", Emoji: "📚",
			keywords: []string{"livro", "caderno", "apostila", "papelaria", "material", "lapis", "caneta"},
		},
		{
			ID: "cursos", Name: "Cursos", Emoji: "📖",
			keywords: []string{"curso", "aula", "workshop", "treinamento", "certificacao"},
		},
	},
	"filhos": {
		{
			ID: "creche_escola", Name: "Creche/Escola", Emoji: "🏫",
			keywords: []string{"creche", "escola", "colegio", "infantil"},
		},
		{
			ID: "brinquedos", Name: "Brinquedos", Emoji: "🧸",
			keywords: []string{"brinquedo", "toy", "ri happy", "pbkids", "lego", "boneca"},
		},
	},
	"financeiras": {
		{
			ID: "emprestimo", Name: "Empréstimo", Emoji: "💰",
			keywords: []string{"emprestimo", "loan", "financiamento", "credito", "parcela"},
		},
		{
			ID: "pagamento_cartao", Name: "Pagamento de Cartão de Crédito", Emoji: "💳",
			keywords: []string{
				"pagamento cartao", "fatura", "fatura cartao", "cartao credito",
				"invoice", "nubank", "inter", "itau", "bradesco", "santander",
				"banco do brasil", "caixa", "mastercard", "visa", "elo", "amex",
				"american express", "hipercard", "pag cartao", "pgto cartao",
			},
		},
		{
			ID: "tarifas", Name: "Tarifas Bancárias", Emoji: "🏦",
			keywords: []string{"tarifa", "taxa", "anuidade", "manutencao", "bancaria"},
		},
		{
			ID: "investimentos", Name: "Investimentos", Emoji: "📈",
			keywords: []string{"investimento", "aplicacao", "acao", "fundo", "tesouro", "cdb"},
		},
	},
	"lazer": {
		{
			ID: "cinema_teatro", Name: "Cinema e Teatro", Emoji: "🎬",
			keywords: []string{"cinema", "teatro", "filme", "ingresso", "cinemark", "uci"},
		},
		{
			ID: "streaming", Name: "Streaming", Emoji: "📺",
			keywords: []string{"netflix", "spotify", "disney", "amazon prime", "hbo", "deezer"},
		},
		{
			ID: "viagens", Name: "Viagens", Emoji: "✈️",
			keywords: []string{"viagem", "hotel", "pousada", "passagem", "turismo", "booking"},
		},
		{
			ID: "restaurantes", Name: "Restaurantes", Emoji: "🍽️",
			keywords: []string{"restaurante", "bar", "lanchonete", "ifood", "delivery", "pizza"},
		},
	},
	"pets": {
		{
			ID: "racao", Name: "Ração", Emoji: "🍖",
			keywords: []string{"racao", "alimentacao", "comida", "whiskas", "pedigree", "royal"},
		},
		{
			ID: "veterinario", Name: "Veterinário", Emoji: "🏥",
			keywords: []string{"veterinario", "vet", "clinica", "consulta", "vacina"},
		},
		{
			ID: "acessorios", Name: "Acessórios", Emoji: "🦴",
			keywords: []string{"coleira", "guia", "brinquedo", "comedouro", "casinha", "areia"},
		},
	},
	"moradia": {
		{
			ID: "aluguel", Name: "Aluguel", Emoji: "🏠",
			keywords: []string{"aluguel", "rent", "locacao", "imobiliaria"},
		},
		{
			ID: "condominio", Name: "Condomínio", Emoji: "🏢",
			keywords: []string{"condominio", "administradora", "sindico", "taxa condominial"},
		},
		{
			ID: "iptu", Name: "IPTU", Emoji: "📄",
			keywords: []string{"iptu", "imposto", "predial", "territorial"},
		},
		{
			ID: "manutencao", Name: "Manutenção", Emoji: "🔨",
			keywords: []string{"manutencao", "reparo", "reforma", "pintura", "encanador", "eletricista"},
		},
	},
	"contas_fixas": {
		{
			ID: "energia", Name: "Energia Elétrica", Emoji: "⚡",
			keywords: []string{"energia", "luz", "eletrica", "cemig", "copel", "light", "enel"},
		},
		{
			ID: "agua", Name: "Água e Esgoto", Emoji: "💧",
			keywords: []string{"agua", "esgoto", "sabesp", "cedae", "saneamento"},
		},
		{
			ID: "gas", Name: "Gás", Emoji: "🔥",
			keywords: []string{"gas", "comgas", "botijao", "encanado"},
		},
		{
			ID: "internet", Name: "Internet", Emoji: "📡",
			keywords: []string{"internet", "banda larga", "fibra", "net", "vivo", "claro", "oi"},
		},
		{
			ID: "telefone", Name: "Telefone", Emoji: "📞",
			keywords: []string{"telefone", "celular", "tim", "vivo", "claro", "oi", "plano"},
		},
	},
	"outras": {
		{
			ID: "presentes", Name: "Presentes", Emoji: "🎁",
			keywords: []string{"presente", "gift", "aniversario", "natal", "dia das maes", "dia dos pais"},
		},
		{
			ID: "doacao", Name: "Doações", Emoji: "❤️",
			keywords: []string{"doacao", "caridade", "ong", "igreja", "doacoes"},
		},
		{
			ID: "multas", Name: "Multas e Taxas", Emoji: "🚨",
			keywords: []string{"multa", "taxa", "detran", "infracao", "penalidade"},
		},
		{
			ID: "seguros", Name: "Seguros", Emoji: "🛡️",
			keywords: []string{"seguro", "insurance", "vida", "carro", "residencial", "porto seguro"},
		},
		{
			ID: "servicos", Name: "Serviços Diversos", Emoji: "🔧",
			keywords: []string{"servico", "manutencao", "reparo", "conserto", "assistencia"},
		},
	},
}

// ExpenseCategories returns the fixed expense taxonomy (without
// keyword lists) for callers building pickers.
func ExpenseCategories() []Category {
	out := make([]Category, len(expenseCategories))
	for i, c := range expenseCategories {
		out[i] = Category{ID: c.ID, Name: c.Name, Emoji: c.Emoji}
	}
	return out
}

// IncomeCategories returns the fixed income taxonomy.
func IncomeCategories() []Category {
	out := make([]Category, len(incomeCategories))
	copy(out, incomeCategories)
	return out
}

// SubcategoriesFor returns the subcategories of a main category,
// including the fallback bucket. Unknown categories get only the
// fallback.
func SubcategoriesFor(categoryID string) []Subcategory {
	table, ok := subcategoryTables[categoryID]
	if !ok {
		return []Subcategory{subcategoryFallback}
	}
	out := make([]Subcategory, 0, len(table)+1)
	for _, s := range table {
		out = append(out, Subcategory{ID: s.ID, Name: s.Name, Emoji: s.Emoji})
	}
	return append(out, subcategoryFallback)
}
