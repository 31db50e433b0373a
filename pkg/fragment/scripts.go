package fragment

const tooltipScript = `<script>
function TooltipDetails(id, hover) {
	var tip = document.getElementById(id);
	if (!tip) { return; }
	var close = document.getElementById('close_' + id);
	if (hover) {
		tip.style.display = 'block';
		return;
	}
	if (tip.dataset.pinned === '1' && close && close.style.display !== 'none') {
		return;
	}
	tip.style.display = tip.style.display === 'block' ? 'none' : 'block';
	if (close) {
		close.style.display = tip.style.display === 'block' ? 'inline' : 'none';
		close.onclick = function (event) {
			event.stopPropagation();
			tip.dataset.pinned = '';
			tip.style.display = 'none';
			close.style.display = 'none';
		};
	}
	tip.dataset.pinned = tip.style.display === 'block' ? '1' : '';
}
</script>`

const encryptedScript = `<script>
function changeEncrypted(elem, changeType) {
	elem.type = changeType;
}
function toggleEncrypted(button, id) {
	var elem = document.getElementById(id);
	if (!elem) { return; }
	if (elem.type === 'password') {
		changeEncrypted(elem, 'text');
		button.innerHTML = 'Conceal';
	} else {
		changeEncrypted(elem, 'password');
		button.innerHTML = 'Reveal';
	}
}
</script>`
