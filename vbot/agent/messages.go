package agent

// User-facing reply fragments. Kept in one place so the wizard and the
// tag reducer share the exact same wording.
const (
	msgEmptyCart = "Seu carrinho esta vazio! Adicione alguns produtos primeiro."

	msgAskName         = "\n\nPara finalizar, preciso de alguns dados. Qual seu nome completo?"
	msgAskStreet       = "Otimo, %s! Agora me diz o nome da sua rua:"
	msgAskNumber       = "Qual o numero da casa/apartamento?"
	msgAskNeighborhood = "Qual o bairro?"
	msgAskCity         = "Qual a cidade?"
	msgAskZipcode      = "Qual o CEP?"
	msgAskComplement   = "Tem algum complemento? (apt, bloco, etc.) Se nao tiver, digite \"nao\""
	msgAskReference    = "Algum ponto de referencia? (proximo a...) Se nao tiver, digite \"nao\""
	msgAskPayment      = "Como vai pagar?\n1 - Dinheiro\n2 - Cartao Credito\n3 - Cartao Debito\n4 - PIX\n\nDigite o numero:"

	msgConfirmRetry   = "Por favor, responda *SIM* para confirmar ou *NAO* para cancelar o pedido."
	msgOrderCanceled  = "Pedido cancelado. Posso ajudar em mais alguma coisa? Seu carrinho ainda esta salvo."
	msgOrderFailed    = "Desculpe, houve um erro ao criar o pedido. Por favor, tente novamente."
	msgGenerateFailed = "Desculpe, tive um problema tecnico. Por favor, tente novamente em instantes."

	msgUpsell       = "Deseja mais alguma coisa?"
	msgListNextItem = "Proximo item da sua lista: %s"
	msgListComplete = "Pronto! Passamos por todos os itens da sua lista. Quer finalizar o pedido?"
)
